package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// View is the bucket a conversation falls in for one participant
type View string

const (
	ViewActive   View = "active"
	ViewArchived View = "archived"
	ViewBlocked  View = "blocked"
	ViewDeleted  View = "deleted"
)

// Visibility flag fields
const (
	FieldArchivedBy = "archivedBy"
	FieldBlockedBy  = "blockedBy"
	FieldDeletedBy  = "deletedBy"
)

// viewPrecedence lists the flagged views from strongest to weakest.
// A conversation is in the first view whose flag holds the user, else Active.
var viewPrecedence = []struct {
	view  View
	field string
}{
	{ViewDeleted, FieldDeletedBy},
	{ViewArchived, FieldArchivedBy},
	{ViewBlocked, FieldBlockedBy},
}

// ViewFromFlags resolves the list query flags using the same precedence as ViewFor
func ViewFromFlags(archived, deleted, blocked bool) View {
	switch {
	case deleted:
		return ViewDeleted
	case archived:
		return ViewArchived
	case blocked:
		return ViewBlocked
	default:
		return ViewActive
	}
}

// ViewFor returns the bucket the conversation belongs to for userId
func (c *Conversation) ViewFor(userId string) View {
	for _, p := range viewPrecedence {
		if containsString(c.flag(p.field), userId) {
			return p.view
		}
	}
	return ViewActive
}

// VisibilityFilter is the store filter selecting userId's conversations in view
func VisibilityFilter(userId string, view View) bson.M {
	filter := bson.M{"participants": userId}
	for _, p := range viewPrecedence {
		if p.view == view {
			filter[p.field] = userId
			return filter
		}
		filter[p.field] = bson.M{"$ne": userId}
	}
	return filter
}

// VisibilityAction is a per-user visibility transition
type VisibilityAction string

const (
	ActionArchive   VisibilityAction = "archive"
	ActionUnarchive VisibilityAction = "unarchive"
	ActionBlock     VisibilityAction = "block"
	ActionUnblock   VisibilityAction = "unblock"
	ActionDelete    VisibilityAction = "delete"
	ActionRestore   VisibilityAction = "restore"
)

type transition struct {
	add    string
	remove []string
}

var transitions = map[VisibilityAction]transition{
	ActionArchive:   {add: FieldArchivedBy},
	ActionUnarchive: {remove: []string{FieldArchivedBy}},
	ActionBlock:     {add: FieldBlockedBy, remove: []string{FieldArchivedBy}},
	ActionUnblock:   {remove: []string{FieldBlockedBy}},
	ActionDelete:    {add: FieldDeletedBy, remove: []string{FieldArchivedBy, FieldBlockedBy}},
	ActionRestore:   {remove: []string{FieldDeletedBy}},
}

// Valid reports whether a is a known transition
func (a VisibilityAction) Valid() bool {
	_, ok := transitions[a]
	return ok
}

// Apply performs the transition for userId in memory
func (c *Conversation) Apply(a VisibilityAction, userId string) {
	t, ok := transitions[a]
	if !ok {
		return
	}
	for _, f := range t.remove {
		c.setFlag(f, removeString(c.flag(f), userId))
	}
	if t.add != "" && !containsString(c.flag(t.add), userId) {
		c.setFlag(t.add, append(c.flag(t.add), userId))
	}
	c.UpdatedAt = time.Now()
}

// Update is the store update document performing the transition for userId
func (a VisibilityAction) Update(userId string) bson.M {
	t := transitions[a]
	update := bson.M{"$set": bson.M{"updatedAt": time.Now()}}
	if t.add != "" {
		update["$addToSet"] = bson.M{t.add: userId}
	}
	if len(t.remove) > 0 {
		pull := bson.M{}
		for _, f := range t.remove {
			pull[f] = userId
		}
		update["$pull"] = pull
	}
	return update
}

func (c *Conversation) flag(field string) []string {
	switch field {
	case FieldArchivedBy:
		return c.ArchivedBy
	case FieldBlockedBy:
		return c.BlockedBy
	case FieldDeletedBy:
		return c.DeletedBy
	}
	return nil
}

func (c *Conversation) setFlag(field string, v []string) {
	switch field {
	case FieldArchivedBy:
		c.ArchivedBy = v
	case FieldBlockedBy:
		c.BlockedBy = v
	case FieldDeletedBy:
		c.DeletedBy = v
	}
}
