package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenPairKey(t *testing.T) {
	assert.Equal(t, "si_alice:bob", GenPairKey("alice", "bob"))
	assert.Equal(t, GenPairKey("alice", "bob"), GenPairKey("bob", "alice"))
	assert.NotEqual(t, GenPairKey("a_b", "c"), GenPairKey("a", "b_c"))
}

func TestConversation_Participants(t *testing.T) {
	c := NewConversation("a", "b")
	assert.True(t, c.HasParticipant("a"))
	assert.False(t, c.HasParticipant("c"))
	assert.Equal(t, "b", c.OtherParticipant("a"))
	assert.Equal(t, "a", c.OtherParticipant("b"))
}

func TestLastMessagePreview(t *testing.T) {
	assert.Equal(t, "hello", LastMessagePreview("  hello ", nil))
	assert.Equal(t, "📎 Attachment", LastMessagePreview("", []string{"uploads/a.png"}))
	assert.Equal(t, "📎 Attachment", LastMessagePreview("   ", []string{"uploads/a.png"}))
	assert.Equal(t, "", LastMessagePreview("", nil))
}

func TestParseMeetingStart(t *testing.T) {
	got, err := ParseMeetingStart("2026-03-14", "09:30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC), got)

	_, err = ParseMeetingStart("14/03/2026", "09:30", time.UTC)
	assert.Error(t, err)
}

func TestActor_ScopeAgency(t *testing.T) {
	admin := Actor{UserId: "1", Role: "admin"}
	agent := Actor{UserId: "2", Role: "agent", AgencyId: "A1"}

	assert.Equal(t, "A9", admin.ScopeAgency("A9"))
	assert.Equal(t, "", admin.ScopeAgency(""))
	assert.Equal(t, "A1", agent.ScopeAgency("A9"))
	assert.True(t, agent.CanAccessAgency("A1"))
	assert.False(t, agent.CanAccessAgency("A9"))
	assert.False(t, Actor{Role: "agent"}.CanAccessAgency(""))
}
