package sdk

import (
	"context"
	"net/url"
)

// SendMessage sends a message to an existing conversation
func (c *Client) SendMessage(ctx context.Context, conversationId string, req *SendMessageRequest) (*Message, error) {
	var result Message
	if err := c.post(ctx, "/conversations/"+url.PathEscape(conversationId)+"/messages", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendText is a convenience method for a text-only message
func (c *Client) SendText(ctx context.Context, conversationId, text string) (*Message, error) {
	return c.SendMessage(ctx, conversationId, &SendMessageRequest{Content: text})
}

// ListMessages returns one page of a conversation, oldest first
func (c *Client) ListMessages(ctx context.Context, conversationId string, opts ListOptions) ([]*Message, *Pagination, error) {
	var result []*Message
	page, err := c.list(ctx, "/conversations/"+url.PathEscape(conversationId)+"/messages", opts.values(), &result)
	if err != nil {
		return nil, nil, err
	}
	return result, page, nil
}

// MarkRead marks every message addressed to the caller in the conversation as read
func (c *Client) MarkRead(ctx context.Context, conversationId string) (string, error) {
	resp, err := c.put(ctx, "/conversations/"+url.PathEscape(conversationId)+"/read", nil, nil)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// LatestMessages returns the newest messages addressed to the caller
func (c *Client) LatestMessages(ctx context.Context) ([]*Message, error) {
	var result []*Message
	if err := c.get(ctx, "/messages/latest", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}
