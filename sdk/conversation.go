package sdk

import (
	"context"
	"net/url"
)

// Conversation list buckets
const (
	ViewActive   = "active"
	ViewArchived = "archived"
	ViewDeleted  = "deleted"
	ViewBlocked  = "blocked"
)

// Conversation transitions
const (
	ActionArchive   = "archive"
	ActionUnarchive = "unarchive"
	ActionBlock     = "block"
	ActionUnblock   = "unblock"
	ActionDelete    = "delete"
	ActionRestore   = "restore"
)

// ListConversations returns one bucket of the caller's conversations; view is one of the View constants
func (c *Client) ListConversations(ctx context.Context, view string) (*ConversationList, error) {
	params := url.Values{}
	if view != "" && view != ViewActive {
		params.Set(view, "true")
	}
	var result ConversationList
	if err := c.get(ctx, "/conversations", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// StartConversation sends a first message to a user, reusing the existing conversation with them
func (c *Client) StartConversation(ctx context.Context, req *StartConversationRequest) (*StartResult, error) {
	var result StartResult
	if err := c.post(ctx, "/conversations/start", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateConversation applies one of the Action constants for the caller
func (c *Client) UpdateConversation(ctx context.Context, conversationId, action string) error {
	_, err := c.put(ctx, "/conversations/"+url.PathEscape(conversationId)+"/"+action, nil, nil)
	return err
}

func (c *Client) ArchiveConversation(ctx context.Context, conversationId string) error {
	return c.UpdateConversation(ctx, conversationId, ActionArchive)
}

func (c *Client) BlockConversation(ctx context.Context, conversationId string) error {
	return c.UpdateConversation(ctx, conversationId, ActionBlock)
}

func (c *Client) DeleteConversation(ctx context.Context, conversationId string) error {
	return c.UpdateConversation(ctx, conversationId, ActionDelete)
}
