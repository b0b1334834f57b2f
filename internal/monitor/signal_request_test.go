package monitor

import (
	"testing"

	"github.com/rileyhilliard/rtop/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuRequest() *SignalRequest {
	return newSignalRequest(processRef{pid: 42, name: "worker"}, RequestMenu)
}

func TestNewSignalRequest(t *testing.T) {
	tests := []struct {
		kind   RequestKind
		signal platform.Signal
		id     int
	}{
		{RequestKill, platform.SignalKill, 9},
		{RequestTerminate, platform.SignalTerm, 15},
		{RequestMenu, platform.SignalUnresolved, 0},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			req := newSignalRequest(processRef{pid: 7, name: "x"}, tt.kind)
			assert.Equal(t, int32(7), req.PID)
			assert.Equal(t, tt.signal, req.Signal)
			assert.Equal(t, tt.id, req.ID)
			assert.True(t, req.Yes)
			assert.False(t, req.No)
		})
	}
}

func TestSignalRequest_PushDigit(t *testing.T) {
	tests := []struct {
		name       string
		digits     []int
		wantID     int
		wantSignal platform.Signal
		wantNotice bool
	}{
		{"single digit", []int{9}, 9, platform.SignalKill, false},
		{"two digits", []int{1, 5}, 15, platform.SignalTerm, false},
		{"out of range keeps previous", []int{3, 3}, 3, platform.SignalQuit, true},
		{"leading zero rejected", []int{0}, 0, platform.SignalUnresolved, true},
		{"upper bound", []int{3, 0}, 30, platform.SignalUnresolved, false},
		{"unresolved id 16", []int{1, 6}, 16, platform.SignalUnresolved, false},
		{"third digit rejected", []int{2, 9, 1}, 29, platform.SignalIO, true},
		{"zero after one", []int{1, 0}, 10, platform.SignalUser1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := menuRequest()
			for _, d := range tt.digits {
				req.PushDigit(d)
			}
			assert.Equal(t, tt.wantID, req.ID)
			assert.Equal(t, tt.wantSignal, req.Signal)
			assert.Equal(t, tt.wantNotice, req.Notice != "", req.Notice)
		})
	}
}

func TestSignalRequest_NoticeClearedOnAccept(t *testing.T) {
	req := menuRequest()
	req.PushDigit(3)
	assert.False(t, req.PushDigit(3))
	require.NotEmpty(t, req.Notice)

	req.PopDigit()
	assert.Empty(t, req.Notice)
	assert.True(t, req.PushDigit(2))
	assert.Empty(t, req.Notice)
}

func TestSignalRequest_PushDigitInvalid(t *testing.T) {
	req := menuRequest()
	assert.False(t, req.PushDigit(-1))
	assert.False(t, req.PushDigit(10))
	assert.Equal(t, 0, req.ID)
}

func TestSignalRequest_PopDigit(t *testing.T) {
	req := menuRequest()
	req.PushDigit(1)
	req.PushDigit(5)

	req.PopDigit()
	assert.Equal(t, 1, req.ID)
	assert.Equal(t, platform.SignalHangup, req.Signal)

	req.PopDigit()
	assert.Equal(t, 0, req.ID)
	assert.Equal(t, platform.SignalUnresolved, req.Signal)

	req.PopDigit()
	assert.Equal(t, 0, req.ID)
}

func TestSignalRequest_Confirmed(t *testing.T) {
	req := menuRequest()
	assert.False(t, req.Confirmed(), "unresolved")

	req.PushDigit(9)
	assert.True(t, req.Confirmed())

	req.SelectNo()
	assert.False(t, req.Confirmed())
	assert.False(t, req.Yes)

	req.SelectYes()
	assert.True(t, req.Confirmed())
	assert.False(t, req.No)
}

func TestRequestKind_String(t *testing.T) {
	assert.Equal(t, "Kill", RequestKill.String())
	assert.Equal(t, "Terminate", RequestTerminate.String())
	assert.Equal(t, "Send Signal", RequestMenu.String())
	assert.Equal(t, "unknown", RequestKind(9).String())
}
