package booking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimeSlotsGrid(t *testing.T) {
	require.Len(t, TimeSlots, 17)
	require.Equal(t, "06:00", TimeSlots[0])
	require.Equal(t, "22:00", TimeSlots[len(TimeSlots)-1])
}

func TestStartSlotsExcludesLastSlot(t *testing.T) {
	starts := StartSlots()
	require.Len(t, starts, 16)
	require.Equal(t, "21:00", starts[len(starts)-1])
	require.False(t, IsStartSlot("22:00"))
	require.True(t, IsStartSlot("06:00"))
	require.False(t, IsStartSlot("06:30"))
}

func TestEndSlotOptions(t *testing.T) {
	require.Equal(t, []string{"21:00", "22:00"}, EndSlotOptions("20:00"))
	require.Empty(t, EndSlotOptions("22:00"))
	require.Nil(t, EndSlotOptions("9:00"))

	opts := EndSlotOptions("09:00")
	require.Equal(t, "10:00", opts[0])
	require.Len(t, opts, 13)
}

func TestDefaultEndSlot(t *testing.T) {
	tests := []struct {
		start string
		want  string
	}{
		{"06:00", "07:00"},
		{"09:00", "10:00"},
		{"21:00", "22:00"},
		{"22:00", "22:00"},
		{"bogus", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, DefaultEndSlot(tt.start), "start %s", tt.start)
	}
}

func TestStartSlotsReturnsCopy(t *testing.T) {
	starts := StartSlots()
	starts[0] = "changed"
	require.Equal(t, "06:00", TimeSlots[0])
}
