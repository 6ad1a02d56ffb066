package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spyabo/Zobbo/internal/apperrors"
)

const testRoomID = "11111111-1111-1111-1111-111111111111"

func newTestSession() *Session {
	return New("http://game.example", nil, nil)
}

func TestIsRoomID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"canonical", testRoomID, true},
		{"random uuid", "f81d4fae-7dec-11d0-a765-00a0c91e6bf6", true},
		{"empty", "", false},
		{"too short", "1111", false},
		{"no hyphens", "11111111111111111111111111111111", false},
		{"braced", "{11111111-1111-1111-1111-111111111111}", false},
		{"non-hex", "zzzzzzzz-1111-1111-1111-111111111111", false},
		{"trailing garbage", testRoomID + "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsRoomID(tt.in))
		})
	}
}

func TestSetRoomFromInput_BareID(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	require.NoError(t, s.SetRoomFromInput("  "+testRoomID+"  "))
	assert.Equal(t, testRoomID, s.RoomID())
	assert.Equal(t, "http://game.example/"+testRoomID, s.InviteLink())
}

func TestSetRoomFromInput_InviteLink(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	require.NoError(t, s.SetRoomFromInput("https://game.example/"+testRoomID))
	assert.Equal(t, testRoomID, s.RoomID())
}

func TestSetRoomFromInput_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{"garbage", "not a room"},
		{"short id", "1234"},
		{"link without id", "https://game.example/rooms"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestSession()
			err := s.SetRoomFromInput(tt.in)
			assert.ErrorIs(t, err, apperrors.ErrInvalidRoomReference)
			assert.Empty(t, s.RoomID(), "room id must stay untouched on failure")
		})
	}
}

func TestSetRoomFromInput_Idempotent(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	require.NoError(t, s.SetRoomFromInput(testRoomID))
	require.NoError(t, s.SetRoomFromInput(testRoomID))
	assert.Equal(t, testRoomID, s.RoomID())
}

func TestSetRoomFromPath(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	s.SetRoomFromPath("/" + testRoomID)
	assert.Equal(t, testRoomID, s.RoomID())
}

func TestSetRoomFromPath_NoMatchIsSilent(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	s.SetRoomFromPath("/about")
	assert.Empty(t, s.RoomID())

	// An established room survives a bad path too.
	s.SetRoomFromPath("/" + testRoomID)
	s.SetRoomFromPath("/not-a-room")
	assert.Equal(t, testRoomID, s.RoomID())
}

func TestInviteLink_NoRoom(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	assert.Equal(t, "http://game.example", s.InviteLink())
}
