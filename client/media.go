package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/socialflow-dev/socialflow-mcp/apierror"
)

// ListMedia returns a page of uploaded media assets.
func (c *Client) ListMedia(ctx context.Context, params ListParams) (*Page[Media], error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(params.PerPage))
	}

	var page Page[Media]
	if err := c.get(ctx, "/media", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetMedia returns a single media asset.
func (c *Client) GetMedia(ctx context.Context, id string) (*Media, error) {
	if id == "" {
		return nil, apierror.NewBadInput(apierror.CallContext{Endpoint: "/media", Method: http.MethodGet}, "media id is required")
	}

	var media Media
	if err := c.get(ctx, "/media/"+url.PathEscape(id), nil, &media); err != nil {
		return nil, err
	}
	return &media, nil
}
