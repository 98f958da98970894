package ussd

// SessionStatus is the gateway's verdict on a session that has ended.
type SessionStatus string

// Status values as the gateway spells them.
const (
	StatusSuccess    SessionStatus = "Success"
	StatusIncomplete SessionStatus = "Incomplete"
	StatusFailed     SessionStatus = "Failed"
)

// Failed reports whether the gateway gave up on the session. Incomplete is
// not a failure; it is the subscriber hanging up.
func (s SessionStatus) Failed() bool {
	return s == StatusFailed
}

// Notification is the callback the gateway fires once after a session
// terminates, whether the application ended it or the user hung up. It is
// informational only: nothing in it feeds back into session state, so a
// handler that just logs it is complete.
type Notification struct {
	Date             string        `json:"date" form:"date"`
	SessionID        string        `json:"sessionId" form:"sessionId" binding:"required"`
	ServiceCode      string        `json:"serviceCode" form:"serviceCode"`
	NetworkCode      string        `json:"networkCode" form:"networkCode"`
	PhoneNumber      string        `json:"phoneNumber" form:"phoneNumber"`
	Status           SessionStatus `json:"status" form:"status"`
	Cost             string        `json:"cost" form:"cost"`
	DurationInMillis string        `json:"durationInMillis" form:"durationInMillis"`
	HopsCount        int           `json:"hopsCount" form:"hopsCount"`
	Input            string        `json:"input" form:"input"`
	LastAppResponse  string        `json:"lastAppResponse" form:"lastAppResponse"`
	ErrorMessage     string        `json:"errorMessage,omitempty" form:"errorMessage"`
}
