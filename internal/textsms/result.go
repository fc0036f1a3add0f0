package textsms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode marks failures produced by this relay rather than by the gateway.
const ErrorCode = "9999"

// ErrorBody is the normalised failure shape returned to callers. The keys are
// hyphenated to stay wire compatible with existing TextSMS relay clients.
type ErrorBody struct {
	ResponseCode        string `json:"response-code"`
	ResponseDescription string `json:"response-description"`
}

// Result is what every gateway operation resolves to: either the provider's
// JSON body untouched, or a normalised failure.
type Result struct {
	Body    json.RawMessage
	Failure *ErrorBody
}

// OK reports whether the call reached the gateway and got a 2xx JSON body.
// A provider-level status code inside that body is not inspected.
func (r Result) OK() bool {
	return r.Failure == nil
}

// Code returns the failure code, or the top-level response code of the
// provider body when it carries one.
func (r Result) Code() string {
	if r.Failure != nil {
		return r.Failure.ResponseCode
	}
	code, _ := providerStatus(r.Body)
	return code
}

// Description mirrors Code for the human readable part.
func (r Result) Description() string {
	if r.Failure != nil {
		return r.Failure.ResponseDescription
	}
	_, desc := providerStatus(r.Body)
	return desc
}

// MarshalJSON writes the provider body verbatim or the failure object.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Failure != nil {
		return json.Marshal(r.Failure)
	}
	if len(r.Body) == 0 {
		return []byte("null"), nil
	}
	return r.Body, nil
}

// Success wraps a raw provider body.
func Success(body []byte) Result {
	return Result{Body: json.RawMessage(body)}
}

// Failure builds a normalised error result.
func Failure(code, description string) Result {
	if code == "" {
		code = ErrorCode
	}
	return Result{Failure: &ErrorBody{ResponseCode: code, ResponseDescription: description}}
}

// Errorf builds a 9999 failure whose description carries the "Error:" prefix
// the gateway's own clients expect.
func Errorf(format string, args ...any) Result {
	return Failure(ErrorCode, "Error:"+fmt.Sprintf(format, args...))
}

var (
	codeKeys = []string{"response-code", "responseCode", "ResponseCode", "response_code"}
	descKeys = []string{"response-description", "responseDescription", "ResponseDescription", "response_description"}
)

// providerStatus pulls a top-level response code and description out of a
// gateway body. Codes may arrive as strings or numbers.
func providerStatus(body []byte) (code, desc string) {
	if len(body) == 0 {
		return "", ""
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return "", ""
	}

	return firstString(fields, codeKeys), firstString(fields, descKeys)
}

func firstString(fields map[string]any, keys []string) string {
	for _, k := range keys {
		v, ok := fields[k]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(fmt.Sprint(v))
		if s != "" {
			return s
		}
	}
	return ""
}
