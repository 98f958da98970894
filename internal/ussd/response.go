package ussd

// Directive prefixes mandated by the gateway wire protocol, trailing space
// included. Anything else is silently misread by the gateway.
const (
	prefixContinue = "CON "
	prefixEnd      = "END "
)

// Response tells the gateway whether to keep the session open for another
// input (CON) or to terminate it (END). The zero value is not meaningful;
// use Continue or End.
type Response struct {
	message string
	ending  bool
}

// Continue builds a response that keeps the session open.
func Continue(message string) *Response {
	return &Response{message: message}
}

// End builds a response that terminates the session.
func End(message string) *Response {
	return &Response{message: message, ending: true}
}

// IsContinuing reports whether the session stays open after this response.
func (r *Response) IsContinuing() bool { return !r.ending }

// IsEnding reports whether this response terminates the session.
func (r *Response) IsEnding() bool { return r.ending }

// Message returns the display text without the wire prefix.
func (r *Response) Message() string { return r.message }

// Render produces the exact body sent back to the gateway: the directive
// prefix followed by the message. Messages longer than roughly 182
// characters are truncated by handsets, not by us; keeping screens short
// is the caller's job.
func (r *Response) Render() string {
	if r.ending {
		return prefixEnd + r.message
	}
	return prefixContinue + r.message
}

func (r *Response) String() string { return r.Render() }
