package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/socialflow-dev/socialflow-mcp/apierror"
)

// ListPosts returns a page of posts.
func (c *Client) ListPosts(ctx context.Context, params ListPostsParams) (*Page[Post], error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(params.PerPage))
	}
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	if params.Tag != "" {
		query.Set("tag", params.Tag)
	}

	var page Page[Post]
	if err := c.get(ctx, "/posts", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPost returns a single post.
func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	if id == "" {
		return nil, apierror.NewBadInput(apierror.CallContext{Endpoint: "/posts", Method: http.MethodGet}, "post id is required")
	}

	var post Post
	if err := c.get(ctx, "/posts/"+url.PathEscape(id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost creates a post as a draft, or scheduled when ScheduledAt is
// set.
func (c *Client) CreatePost(ctx context.Context, input CreatePostInput) (*Post, error) {
	cc := apierror.CallContext{Endpoint: "/posts", Method: http.MethodPost}
	if input.Content == "" {
		return nil, apierror.NewBadInput(cc, "post content is required")
	}
	if len(input.AccountIDs) == 0 {
		return nil, apierror.NewBadInput(cc, "at least one account id is required")
	}

	var post Post
	if err := c.send(ctx, http.MethodPost, "/posts", input, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost updates an existing post.
func (c *Client) UpdatePost(ctx context.Context, id string, input UpdatePostInput) (*Post, error) {
	if id == "" {
		return nil, apierror.NewBadInput(apierror.CallContext{Endpoint: "/posts", Method: http.MethodPut}, "post id is required")
	}

	var post Post
	if err := c.send(ctx, http.MethodPut, "/posts/"+url.PathEscape(id), input, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes a post.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	if id == "" {
		return apierror.NewBadInput(apierror.CallContext{Endpoint: "/posts", Method: http.MethodDelete}, "post id is required")
	}
	return c.send(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, nil)
}

// SchedulePost sets the publish time for a post.
func (c *Client) SchedulePost(ctx context.Context, id string, input SchedulePostInput) (*Post, error) {
	cc := apierror.CallContext{Endpoint: "/posts", Method: http.MethodPost}
	if id == "" {
		return nil, apierror.NewBadInput(cc, "post id is required")
	}
	if input.ScheduledAt == "" {
		return nil, apierror.NewBadInput(cc, "scheduled_at is required")
	}

	var post Post
	if err := c.send(ctx, http.MethodPost, "/posts/"+url.PathEscape(id)+"/schedule", input, &post); err != nil {
		return nil, err
	}
	return &post, nil
}
