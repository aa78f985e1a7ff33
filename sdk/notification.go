package sdk

import (
	"context"
	"net/url"
)

// ListNotifications returns one page of the caller's notifications; unreadOnly narrows to unread ones
func (c *Client) ListNotifications(ctx context.Context, unreadOnly bool, opts ListOptions) ([]*Notification, *Pagination, error) {
	params := opts.values()
	if unreadOnly {
		params.Set("type", "unread")
	}
	var result []*Notification
	page, err := c.list(ctx, "/notifications", params, &result)
	if err != nil {
		return nil, nil, err
	}
	return result, page, nil
}

func (c *Client) UnreadNotificationCount(ctx context.Context) (int64, error) {
	var result struct {
		Count int64 `json:"count"`
	}
	if err := c.get(ctx, "/notifications/unread-count", nil, &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	_, err := c.put(ctx, "/notifications/"+url.PathEscape(id)+"/read", nil, nil)
	return err
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	_, err := c.put(ctx, "/notifications/read-all", nil, nil)
	return err
}
