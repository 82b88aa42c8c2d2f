package seatsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_SingleSeat(t *testing.T) {
	sel := NewSelection()
	assert.Equal(t, Unselected, sel.State())

	require.NoError(t, sel.Select("1A"))
	assert.Equal(t, Selected, sel.State())
	assert.Equal(t, "1A", sel.Seat())

	// Picking another seat replaces the first; there is never more than one.
	require.NoError(t, sel.Select("2B"))
	assert.Equal(t, "2B", sel.Seat())

	require.NoError(t, sel.Deselect())
	assert.Equal(t, Unselected, sel.State())
	assert.Empty(t, sel.Seat())
}

func TestSelection_LockedWhilePending(t *testing.T) {
	sel := NewSelection()
	require.NoError(t, sel.Select("1A"))
	require.NoError(t, sel.Begin())
	assert.Equal(t, Pending, sel.State())

	assert.ErrorIs(t, sel.Select("2B"), ErrConfirmInFlight)
	assert.ErrorIs(t, sel.Deselect(), ErrConfirmInFlight)
	assert.ErrorIs(t, sel.Begin(), ErrConfirmInFlight)
}

func TestSelection_ConfirmedIsFinal(t *testing.T) {
	sel := NewSelection()
	require.NoError(t, sel.Select("1A"))
	require.NoError(t, sel.Begin())
	sel.Succeed()
	assert.Equal(t, Confirmed, sel.State())

	assert.ErrorIs(t, sel.Select("2B"), ErrAlreadyConfirmed)
	assert.ErrorIs(t, sel.Deselect(), ErrAlreadyConfirmed)
	assert.ErrorIs(t, sel.Begin(), ErrAlreadyConfirmed)
}

func TestSelection_FailKeepsSeatAndReason(t *testing.T) {
	sel := NewSelection()
	require.NoError(t, sel.Select("1A"))
	require.NoError(t, sel.Begin())
	sel.Fail(ErrSeatAlreadyTaken)

	assert.Equal(t, Rejected, sel.State())
	assert.Equal(t, "1A", sel.Seat())
	assert.ErrorIs(t, sel.Reason(), ErrSeatAlreadyTaken)

	// A rejected selection can be retried with a fresh choice.
	require.NoError(t, sel.Select("2B"))
	assert.Equal(t, Selected, sel.State())
	assert.NoError(t, sel.Reason())
}

func TestSelection_RejectedCannotBeginAgain(t *testing.T) {
	sel := NewSelection()
	require.NoError(t, sel.Select("1A"))
	require.NoError(t, sel.Begin())
	sel.Fail(ErrSeatAlreadyTaken)

	// Only Selected enters Pending. After a rejection the seat must be
	// chosen again before another attempt can start.
	assert.ErrorIs(t, sel.Begin(), ErrReselectRequired)
	assert.Equal(t, Rejected, sel.State())

	require.NoError(t, sel.Select("1A"))
	require.NoError(t, sel.Begin())
	assert.Equal(t, Pending, sel.State())
}

func TestSelection_BeginRequiresSeat(t *testing.T) {
	sel := NewSelection()
	assert.ErrorIs(t, sel.Begin(), ErrNothingSelected)
}

func TestSelection_Revert(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(sel *Selection)
		seat     string
		reverted bool
		want     SelectionState
	}{
		{
			name:     "selected seat reverts",
			setup:    func(sel *Selection) { sel.Select("1A") },
			seat:     "1A",
			reverted: true,
			want:     Unselected,
		},
		{
			name:     "other seat is ignored",
			setup:    func(sel *Selection) { sel.Select("1A") },
			seat:     "2B",
			reverted: false,
			want:     Selected,
		},
		{
			name: "rejected seat reverts",
			setup: func(sel *Selection) {
				sel.Select("1A")
				sel.Begin()
				sel.Fail(ErrSeatAlreadyTaken)
			},
			seat:     "1A",
			reverted: true,
			want:     Unselected,
		},
		{
			name: "pending attempt is left to its own response",
			setup: func(sel *Selection) {
				sel.Select("1A")
				sel.Begin()
			},
			seat:     "1A",
			reverted: false,
			want:     Pending,
		},
		{
			name: "confirmed seat stays confirmed",
			setup: func(sel *Selection) {
				sel.Select("1A")
				sel.Begin()
				sel.Succeed()
			},
			seat:     "1A",
			reverted: false,
			want:     Confirmed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := NewSelection()
			tt.setup(sel)
			assert.Equal(t, tt.reverted, sel.Revert(tt.seat))
			assert.Equal(t, tt.want, sel.State())
		})
	}
}
