package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/socialflow-dev/socialflow-mcp/apierror"
)

// ListTags returns all tags.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	var page Page[Tag]
	if err := c.get(ctx, "/tags", nil, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// CreateTag creates a tag.
func (c *Client) CreateTag(ctx context.Context, input CreateTagInput) (*Tag, error) {
	if input.Name == "" {
		return nil, apierror.NewBadInput(apierror.CallContext{Endpoint: "/tags", Method: http.MethodPost}, "tag name is required")
	}

	var tag Tag
	if err := c.send(ctx, http.MethodPost, "/tags", input, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// UpdateTag renames or recolors a tag.
func (c *Client) UpdateTag(ctx context.Context, id string, input UpdateTagInput) (*Tag, error) {
	if id == "" {
		return nil, apierror.NewBadInput(apierror.CallContext{Endpoint: "/tags", Method: http.MethodPut}, "tag id is required")
	}

	var tag Tag
	if err := c.send(ctx, http.MethodPut, "/tags/"+url.PathEscape(id), input, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// DeleteTag deletes a tag.
func (c *Client) DeleteTag(ctx context.Context, id string) error {
	if id == "" {
		return apierror.NewBadInput(apierror.CallContext{Endpoint: "/tags", Method: http.MethodDelete}, "tag id is required")
	}
	return c.send(ctx, http.MethodDelete, "/tags/"+url.PathEscape(id), nil, nil)
}
