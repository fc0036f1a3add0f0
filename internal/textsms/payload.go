package textsms

// Outbound payloads. Field names follow the gateway's wire contract, including
// its inconsistent casing ("apiKey" everywhere except "apikey" on balance).

type sendPayload struct {
	APIKey     string `json:"apiKey"`
	PartnerID  string `json:"partnerID"`
	Message    string `json:"message"`
	Shortcode  string `json:"shortcode"`
	Mobile     string `json:"mobile"`
	TimeToSend string `json:"timeToSend,omitempty"`
}

// PassTypePlain tells the gateway the message body is not encoded.
const PassTypePlain = "plain"

type bulkEntry struct {
	PartnerID   string `json:"partnerID"`
	APIKey      string `json:"apiKey"`
	PassType    string `json:"passType"`
	Shortcode   string `json:"shortcode"`
	Mobile      string `json:"mobile"`
	Message     string `json:"message"`
	ClientSmsID string `json:"clientSmsId"`
}

type bulkPayload struct {
	Count   int         `json:"count"`
	SmsList []bulkEntry `json:"smsList"`
}

type deliveryReportPayload struct {
	APIKey    string `json:"apiKey"`
	PartnerID string `json:"partnerID"`
	MessageID string `json:"messageId"`
}

type balancePayload struct {
	APIKey    string `json:"apikey"`
	PartnerID string `json:"partnerID"`
}

// buildBulk maps the parallel input slices onto batch entries, index for index.
// Callers must have checked that the slices have equal length.
func buildBulk(c Credentials, mobiles, messages, clientSmsIDs []string) bulkPayload {
	list := make([]bulkEntry, len(mobiles))
	for i := range mobiles {
		list[i] = bulkEntry{
			PartnerID:   c.PartnerID,
			APIKey:      c.APIKey,
			PassType:    PassTypePlain,
			Shortcode:   c.SenderID,
			Mobile:      NormalizeMobile(mobiles[i]),
			Message:     messages[i],
			ClientSmsID: clientSmsIDs[i],
		}
	}
	return bulkPayload{Count: len(list), SmsList: list}
}
