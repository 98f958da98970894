// Package ussd models the wire protocol spoken by USSD gateways: the
// accumulated-input navigation convention on the way in, and the CON/END
// directive format on the way out.
//
// Everything here is pure and stateless. Session state belongs to the flow
// package; storage belongs to the store package.
package ussd

import "strings"

// PathDelimiter joins every input the user has entered so far into the
// accumulated text the gateway re-sends on each interaction.
const PathDelimiter = "*"

// Request is the payload the gateway POSTs on every interaction of a
// session. Text is empty on the first interaction and grows by one
// delimiter-separated segment per user input afterwards. PhoneNumber is
// passed through as delivered; no validation happens at this layer.
type Request struct {
	SessionID   string `json:"sessionId" form:"sessionId" binding:"required"`
	ServiceCode string `json:"serviceCode" form:"serviceCode" binding:"required"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber" binding:"required"`
	Text        string `json:"text" form:"text"`
	NetworkCode string `json:"networkCode" form:"networkCode"`
}

// IsInitial reports whether this is the first interaction of the session.
func (r *Request) IsInitial() bool {
	return r.Text == ""
}

// Depth returns the number of inputs the user has entered so far.
func (r *Request) Depth() int {
	if r.Text == "" {
		return 0
	}
	return strings.Count(r.Text, PathDelimiter) + 1
}

// CurrentInput returns the most recent input. ok is false only on the
// initial interaction. Text ending in the delimiter yields ("", true): an
// input that is present but blank, which is not the same as absent.
func (r *Request) CurrentInput() (input string, ok bool) {
	if r.Text == "" {
		return "", false
	}
	idx := strings.LastIndex(r.Text, PathDelimiter)
	return r.Text[idx+1:], true
}

// Path returns every input in order, preserving empty segments. Nil on the
// initial interaction.
func (r *Request) Path() []string {
	if r.Text == "" {
		return nil
	}
	return strings.Split(r.Text, PathDelimiter)
}

// MatchesPath reports whether the accumulated text equals path exactly.
func (r *Request) MatchesPath(path string) bool {
	return r.Text == path
}

// StartsWithPath reports whether the accumulated text begins with path.
// Callers use it to hand a whole navigation subtree to one handler.
func (r *Request) StartsWithPath(path string) bool {
	return strings.HasPrefix(r.Text, path)
}
