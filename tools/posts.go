package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/socialflow-dev/socialflow-mcp/client"
)

// ListPostsInput filters and paginates post listings.
type ListPostsInput struct {
	Page    int    `json:"page,omitempty" jsonschema:"page number, starting at 1"`
	PerPage int    `json:"per_page,omitempty" jsonschema:"results per page"`
	Status  string `json:"status,omitempty" jsonschema:"filter by status: draft, scheduled, published, failed"`
	Tag     string `json:"tag,omitempty" jsonschema:"filter by tag name"`
}

// ListPostsOutput is a page of posts.
type ListPostsOutput struct {
	Posts   []client.Post `json:"posts"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
	Total   int           `json:"total"`
}

func listPostsHandler(api API) mcp.ToolHandlerFor[ListPostsInput, ListPostsOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in ListPostsInput) (*mcp.CallToolResult, ListPostsOutput, error) {
		page, err := api.ListPosts(ctx, client.ListPostsParams{
			Page:    in.Page,
			PerPage: in.PerPage,
			Status:  in.Status,
			Tag:     in.Tag,
		})
		if err != nil {
			return errorResult(err), ListPostsOutput{}, nil
		}
		return nil, ListPostsOutput{
			Posts:   page.Items,
			Page:    page.Page,
			PerPage: page.PerPage,
			Total:   page.Total,
		}, nil
	}
}

// PostIDInput identifies a post.
type PostIDInput struct {
	ID string `json:"id" jsonschema:"post id"`
}

// PostOutput wraps a single post.
type PostOutput struct {
	Post client.Post `json:"post"`
}

func getPostHandler(api API) mcp.ToolHandlerFor[PostIDInput, PostOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in PostIDInput) (*mcp.CallToolResult, PostOutput, error) {
		post, err := api.GetPost(ctx, in.ID)
		if err != nil {
			return errorResult(err), PostOutput{}, nil
		}
		return nil, PostOutput{Post: *post}, nil
	}
}

// CreatePostInput is the payload for creating a post.
type CreatePostInput struct {
	Content     string   `json:"content" jsonschema:"post body text"`
	AccountIDs  []string `json:"account_ids" jsonschema:"ids of the accounts to publish to"`
	Tags        []string `json:"tags,omitempty" jsonschema:"tag names to attach"`
	MediaIDs    []string `json:"media_ids,omitempty" jsonschema:"ids of media assets to attach"`
	ScheduledAt string   `json:"scheduled_at,omitempty" jsonschema:"ISO 8601 publish time; omit to create a draft"`
}

func createPostHandler(api API) mcp.ToolHandlerFor[CreatePostInput, PostOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in CreatePostInput) (*mcp.CallToolResult, PostOutput, error) {
		post, err := api.CreatePost(ctx, client.CreatePostInput{
			Content:     in.Content,
			AccountIDs:  in.AccountIDs,
			Tags:        in.Tags,
			MediaIDs:    in.MediaIDs,
			ScheduledAt: in.ScheduledAt,
		})
		if err != nil {
			return errorResult(err), PostOutput{}, nil
		}
		return nil, PostOutput{Post: *post}, nil
	}
}

// UpdatePostInput is the payload for updating a post.
type UpdatePostInput struct {
	ID          string   `json:"id" jsonschema:"post id"`
	Content     string   `json:"content,omitempty" jsonschema:"replacement body text"`
	AccountIDs  []string `json:"account_ids,omitempty" jsonschema:"replacement account ids"`
	Tags        []string `json:"tags,omitempty" jsonschema:"replacement tag names"`
	MediaIDs    []string `json:"media_ids,omitempty" jsonschema:"replacement media ids"`
	ScheduledAt string   `json:"scheduled_at,omitempty" jsonschema:"replacement ISO 8601 publish time"`
}

func updatePostHandler(api API) mcp.ToolHandlerFor[UpdatePostInput, PostOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in UpdatePostInput) (*mcp.CallToolResult, PostOutput, error) {
		post, err := api.UpdatePost(ctx, in.ID, client.UpdatePostInput{
			Content:     in.Content,
			AccountIDs:  in.AccountIDs,
			Tags:        in.Tags,
			MediaIDs:    in.MediaIDs,
			ScheduledAt: in.ScheduledAt,
		})
		if err != nil {
			return errorResult(err), PostOutput{}, nil
		}
		return nil, PostOutput{Post: *post}, nil
	}
}

// DeletePostOutput confirms a deletion.
type DeletePostOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

func deletePostHandler(api API) mcp.ToolHandlerFor[PostIDInput, DeletePostOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in PostIDInput) (*mcp.CallToolResult, DeletePostOutput, error) {
		if err := api.DeletePost(ctx, in.ID); err != nil {
			return errorResult(err), DeletePostOutput{}, nil
		}
		return nil, DeletePostOutput{Deleted: true, ID: in.ID}, nil
	}
}

// SchedulePostInput sets the publish time for a post.
type SchedulePostInput struct {
	ID          string `json:"id" jsonschema:"post id"`
	ScheduledAt string `json:"scheduled_at" jsonschema:"ISO 8601 publish time"`
	Timezone    string `json:"timezone,omitempty" jsonschema:"IANA timezone for the publish time"`
}

func schedulePostHandler(api API) mcp.ToolHandlerFor[SchedulePostInput, PostOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in SchedulePostInput) (*mcp.CallToolResult, PostOutput, error) {
		post, err := api.SchedulePost(ctx, in.ID, client.SchedulePostInput{
			ScheduledAt: in.ScheduledAt,
			Timezone:    in.Timezone,
		})
		if err != nil {
			return errorResult(err), PostOutput{}, nil
		}
		return nil, PostOutput{Post: *post}, nil
	}
}
