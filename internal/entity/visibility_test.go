package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestConversation_BlockClearsArchive(t *testing.T) {
	c := NewConversation("a", "b")
	c.Apply(ActionArchive, "a")
	c.Apply(ActionArchive, "b")

	c.Apply(ActionBlock, "a")

	assert.NotContains(t, c.ArchivedBy, "a")
	assert.Contains(t, c.BlockedBy, "a")
	assert.Contains(t, c.ArchivedBy, "b", "other participant is untouched")
	assert.Equal(t, ViewBlocked, c.ViewFor("a"))
	assert.Equal(t, ViewArchived, c.ViewFor("b"))
}

func TestConversation_DeleteClearsBoth(t *testing.T) {
	c := NewConversation("a", "b")
	c.ArchivedBy = []string{"a"}
	c.BlockedBy = []string{"a"}

	c.Apply(ActionDelete, "a")

	assert.Empty(t, c.ArchivedBy)
	assert.Empty(t, c.BlockedBy)
	assert.Equal(t, []string{"a"}, c.DeletedBy)
}

func TestConversation_ApplyIdempotent(t *testing.T) {
	c := NewConversation("a", "b")
	c.Apply(ActionArchive, "a")
	c.Apply(ActionArchive, "a")
	assert.Equal(t, []string{"a"}, c.ArchivedBy)

	c.Apply(ActionUnarchive, "a")
	c.Apply(ActionUnarchive, "a")
	assert.Empty(t, c.ArchivedBy)
	assert.Equal(t, ViewActive, c.ViewFor("a"))
}

func TestConversation_Restore(t *testing.T) {
	c := NewConversation("a", "b")
	c.Apply(ActionDelete, "a")
	c.Apply(ActionRestore, "a")
	assert.Equal(t, ViewActive, c.ViewFor("a"))

	// flags set after deletion survive the restore
	c.Apply(ActionDelete, "a")
	c.Apply(ActionArchive, "a")
	assert.Equal(t, ViewDeleted, c.ViewFor("a"))
	c.Apply(ActionRestore, "a")
	assert.Equal(t, ViewArchived, c.ViewFor("a"))
}

func TestConversation_ViewPrecedence(t *testing.T) {
	tests := []struct {
		name                      string
		archived, blocked, delete bool
		want                      View
	}{
		{"none", false, false, false, ViewActive},
		{"archived", true, false, false, ViewArchived},
		{"blocked", false, true, false, ViewBlocked},
		{"archived and blocked", true, true, false, ViewArchived},
		{"archived and deleted", true, false, true, ViewDeleted},
		{"all", true, true, true, ViewDeleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConversation("a", "b")
			if tt.archived {
				c.ArchivedBy = []string{"a"}
			}
			if tt.blocked {
				c.BlockedBy = []string{"a"}
			}
			if tt.delete {
				c.DeletedBy = []string{"a"}
			}
			assert.Equal(t, tt.want, c.ViewFor("a"))
			assert.Equal(t, ViewActive, c.ViewFor("b"))
		})
	}
}

func TestViewFromFlags(t *testing.T) {
	assert.Equal(t, ViewActive, ViewFromFlags(false, false, false))
	assert.Equal(t, ViewArchived, ViewFromFlags(true, false, false))
	assert.Equal(t, ViewBlocked, ViewFromFlags(false, false, true))
	assert.Equal(t, ViewDeleted, ViewFromFlags(true, true, true))
	assert.Equal(t, ViewArchived, ViewFromFlags(true, false, true))
}

func TestVisibilityFilter(t *testing.T) {
	ne := bson.M{"$ne": "u"}

	assert.Equal(t, bson.M{"participants": "u", "deletedBy": "u"}, VisibilityFilter("u", ViewDeleted))
	assert.Equal(t, bson.M{"participants": "u", "deletedBy": ne, "archivedBy": "u"}, VisibilityFilter("u", ViewArchived))
	assert.Equal(t, bson.M{"participants": "u", "deletedBy": ne, "archivedBy": ne, "blockedBy": "u"}, VisibilityFilter("u", ViewBlocked))
	assert.Equal(t, bson.M{"participants": "u", "deletedBy": ne, "archivedBy": ne, "blockedBy": ne}, VisibilityFilter("u", ViewActive))
}

func TestVisibilityAction_Update(t *testing.T) {
	up := ActionDelete.Update("u")
	assert.Equal(t, bson.M{"deletedBy": "u"}, up["$addToSet"])
	assert.Equal(t, bson.M{"archivedBy": "u", "blockedBy": "u"}, up["$pull"])
	assert.Contains(t, up, "$set")

	up = ActionUnblock.Update("u")
	assert.NotContains(t, up, "$addToSet")
	assert.Equal(t, bson.M{"blockedBy": "u"}, up["$pull"])

	up = ActionArchive.Update("u")
	assert.Equal(t, bson.M{"archivedBy": "u"}, up["$addToSet"])
	assert.NotContains(t, up, "$pull")

	assert.True(t, ActionRestore.Valid())
	assert.False(t, VisibilityAction("pin").Valid())
}
