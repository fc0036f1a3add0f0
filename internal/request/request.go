package request

// RefresherRequest represents the JSON body for balance refresher control.
type RefresherRequest struct {
	// Action controls the refresher. Allowed values:
	// - "start": start refreshing the balance snapshot
	// - "stop":  stop refreshing
	Action string `json:"action" validate:"required,oneof=start stop"`
}

// SendRequest is the body of POST /api/textsms/send.
type SendRequest struct {
	Mobile  string `json:"mobile" validate:"required" example:"0712345678"`
	Message string `json:"message" validate:"required" example:"Hello from TextSMS"`
}

// ScheduleRequest is the body of POST /api/textsms/schedule.
type ScheduleRequest struct {
	Mobile     string `json:"mobile" validate:"required" example:"0712345678"`
	Message    string `json:"message" validate:"required" example:"Reminder"`
	TimeToSend string `json:"timeToSend" validate:"required" example:"2026-10-20 08:00"`
}

// BulkRequest is the body of POST /api/textsms/bulk. The three lists are
// matched by index. "message" is accepted as an alias of "messages".
type BulkRequest struct {
	MobileNumbers []string `json:"mobileNumbers" validate:"required,min=1"`
	Messages      []string `json:"messages"`
	Message       []string `json:"message,omitempty" swaggerignore:"true"`
	ClientSmsIDs  []string `json:"clientSmsIds"`
}

// Texts returns the message list, honouring the "message" alias.
func (b BulkRequest) Texts() []string {
	if len(b.Messages) == 0 {
		return b.Message
	}
	return b.Messages
}
