package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// APIPrefix is prepended to every route
const APIPrefix = "/api/v1"

// Client is the SDK client for the realty API
type Client struct {
	baseURL    string
	httpClient *client.Client
	token      string
}

// ClientOption is a function to configure the client
type ClientOption func(*Client)

// WithHertzClient sets a custom Hertz client
func WithHertzClient(httpClient *client.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithToken sets the authentication token
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient creates a new SDK client
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	c := &Client{baseURL: baseURL}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient != nil {
		return c, nil
	}

	httpClient, err := client.NewClient(
		client.WithDialTimeout(10*time.Second),
		client.WithClientReadTimeout(30*time.Second),
		client.WithWriteTimeout(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http client: %w", err)
	}
	c.httpClient = httpClient
	return c, nil
}

// SetToken sets the authentication token
func (c *Client) SetToken(token string) {
	c.token = token
}

// GetToken returns the current token
func (c *Client) GetToken() string {
	return c.token
}

// do sends one request and decodes the envelope; data and pagination are decoded when asked for
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, data interface{}, page *Pagination) (*Response, error) {
	reqURL := c.baseURL + APIPrefix + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req := &protocol.Request{}
	resp := &protocol.Response{}
	req.SetMethod(method)
	req.SetRequestURI(reqURL)

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		req.Header.SetContentTypeBytes([]byte(consts.MIMEApplicationJSON))
		req.SetBody(jsonBody)
	}

	if err := c.httpClient.Do(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var apiResp Response
	if err := json.Unmarshal(resp.Body(), &apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: status=%d: %w", resp.StatusCode(), err)
	}

	if !apiResp.Success {
		return nil, &Error{Status: resp.StatusCode(), Code: apiResp.Code, Msg: apiResp.Message}
	}

	if data != nil && len(apiResp.Data) > 0 {
		if err := json.Unmarshal(apiResp.Data, data); err != nil {
			return nil, fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	if page != nil && len(apiResp.Pagination) > 0 {
		if err := json.Unmarshal(apiResp.Pagination, page); err != nil {
			return nil, fmt.Errorf("failed to decode pagination: %w", err)
		}
	}

	return &apiResp, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, data interface{}) error {
	_, err := c.do(ctx, consts.MethodGet, path, params, nil, data, nil)
	return err
}

func (c *Client) list(ctx context.Context, path string, params url.Values, data interface{}) (*Pagination, error) {
	var page Pagination
	if _, err := c.do(ctx, consts.MethodGet, path, params, nil, data, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) post(ctx context.Context, path string, body, data interface{}) error {
	_, err := c.do(ctx, consts.MethodPost, path, nil, body, data, nil)
	return err
}

func (c *Client) put(ctx context.Context, path string, body, data interface{}) (*Response, error) {
	return c.do(ctx, consts.MethodPut, path, nil, body, data, nil)
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, consts.MethodDelete, path, nil, nil, nil, nil)
	return err
}
