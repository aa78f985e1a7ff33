package sdk

import (
	"context"
	"net/url"
	"strconv"
)

func (o ListOptions) values() url.Values {
	v := url.Values{}
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Search != "" {
		v.Set("search", o.Search)
	}
	if o.Status != "" {
		v.Set("status", o.Status)
	}
	if o.AgencyId != "" {
		v.Set("agencyId", o.AgencyId)
	}
	return v
}

// CreateCustomer adds a lead; a phone number already used in the agency fails with ErrCustomerExists
func (c *Client) CreateCustomer(ctx context.Context, customer *Customer) (*Customer, error) {
	var result Customer
	if err := c.post(ctx, "/customers", customer, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListCustomers returns one page of customers
func (c *Client) ListCustomers(ctx context.Context, opts ListOptions) ([]*Customer, *Pagination, error) {
	var result []*Customer
	page, err := c.list(ctx, "/customers", opts.values(), &result)
	if err != nil {
		return nil, nil, err
	}
	return result, page, nil
}

func (c *Client) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	var result Customer
	if err := c.get(ctx, "/customers/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, id string, customer *Customer) (*Customer, error) {
	var result Customer
	if _, err := c.put(ctx, "/customers/"+url.PathEscape(id), customer, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.delete(ctx, "/customers/"+url.PathEscape(id))
}
