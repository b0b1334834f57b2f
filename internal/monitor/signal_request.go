package monitor

import (
	"fmt"

	"github.com/rileyhilliard/rtop/internal/platform"
)

// RequestKind is the popup that opened a SignalRequest.
type RequestKind int

const (
	RequestKill RequestKind = iota
	RequestTerminate
	RequestMenu
)

// String returns the popup title for the kind.
func (k RequestKind) String() string {
	switch k {
	case RequestKill:
		return "Kill"
	case RequestTerminate:
		return "Terminate"
	case RequestMenu:
		return "Send Signal"
	default:
		return "unknown"
	}
}

// SignalRequest is the pending signal shown in the confirmation popup.
// Yes and No are mutually exclusive.
type SignalRequest struct {
	PID    int32
	Name   string
	Kind   RequestKind
	Signal platform.Signal
	ID     int // 0 while no id has been typed
	Yes    bool
	No     bool
	// Notice explains the last rejected digit. Cleared by the next accepted edit.
	Notice string
}

func newSignalRequest(p processRef, kind RequestKind) *SignalRequest {
	req := &SignalRequest{
		PID:  p.pid,
		Name: p.name,
		Kind: kind,
		Yes:  true,
	}
	switch kind {
	case RequestKill:
		req.Signal = platform.SignalKill
	case RequestTerminate:
		req.Signal = platform.SignalTerm
	}
	req.ID = req.Signal.ID()
	return req
}

// processRef is the pinned process a popup was opened for.
type processRef struct {
	pid  int32
	name string
}

// SelectYes selects the confirm button.
func (r *SignalRequest) SelectYes() {
	r.Yes, r.No = true, false
}

// SelectNo selects the decline button.
func (r *SignalRequest) SelectNo() {
	r.Yes, r.No = false, true
}

// Confirmed reports whether Enter should deliver the signal.
func (r *SignalRequest) Confirmed() bool {
	return r.Yes && !r.No && r.Signal.Resolved()
}

// PushDigit appends a typed digit to the signal id. A candidate outside
// [MinSignalID, MaxSignalID] is rejected: the previous id is kept and Notice
// records why. It returns false on rejection.
func (r *SignalRequest) PushDigit(d int) bool {
	if d < 0 || d > 9 {
		return false
	}

	candidate := r.ID*10 + d
	if candidate < platform.MinSignalID || candidate > platform.MaxSignalID {
		if r.ID == 0 {
			r.Notice = fmt.Sprintf("signal ids start at %d", platform.MinSignalID)
		} else {
			r.Notice = fmt.Sprintf("%d is out of range %d-%d", candidate, platform.MinSignalID, platform.MaxSignalID)
		}
		return false
	}

	r.ID = candidate
	r.Signal = platform.SignalFromID(candidate)
	r.Notice = ""
	return true
}

// PopDigit removes the last digit of the id. Removing the only digit clears
// both the id and the signal.
func (r *SignalRequest) PopDigit() {
	r.Notice = ""
	if r.ID < 10 {
		r.ID = 0
		r.Signal = platform.SignalUnresolved
		return
	}
	r.ID /= 10
	r.Signal = platform.SignalFromID(r.ID)
}
