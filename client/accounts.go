package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/socialflow-dev/socialflow-mcp/apierror"
)

// ListAccounts returns a page of connected social accounts.
func (c *Client) ListAccounts(ctx context.Context, params ListParams) (*Page[Account], error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(params.PerPage))
	}

	var page Page[Account]
	if err := c.get(ctx, "/accounts", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetAccount returns a single connected account.
func (c *Client) GetAccount(ctx context.Context, id string) (*Account, error) {
	if id == "" {
		return nil, apierror.NewBadInput(apierror.CallContext{Endpoint: "/accounts", Method: http.MethodGet}, "account id is required")
	}

	var account Account
	if err := c.get(ctx, "/accounts/"+url.PathEscape(id), nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}
