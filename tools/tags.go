package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/socialflow-dev/socialflow-mcp/client"
)

// ListTagsInput has no parameters.
type ListTagsInput struct{}

// ListTagsOutput is the full tag list.
type ListTagsOutput struct {
	Tags []client.Tag `json:"tags"`
}

func listTagsHandler(api API) mcp.ToolHandlerFor[ListTagsInput, ListTagsOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in ListTagsInput) (*mcp.CallToolResult, ListTagsOutput, error) {
		tags, err := api.ListTags(ctx)
		if err != nil {
			return errorResult(err), ListTagsOutput{}, nil
		}
		return nil, ListTagsOutput{Tags: tags}, nil
	}
}

// CreateTagInput is the payload for creating a tag.
type CreateTagInput struct {
	Name     string `json:"name" jsonschema:"tag name"`
	HexColor string `json:"hex_color,omitempty" jsonschema:"display color, e.g. #ff6600"`
}

// TagOutput wraps a single tag.
type TagOutput struct {
	Tag client.Tag `json:"tag"`
}

func createTagHandler(api API) mcp.ToolHandlerFor[CreateTagInput, TagOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in CreateTagInput) (*mcp.CallToolResult, TagOutput, error) {
		tag, err := api.CreateTag(ctx, client.CreateTagInput{Name: in.Name, HexColor: in.HexColor})
		if err != nil {
			return errorResult(err), TagOutput{}, nil
		}
		return nil, TagOutput{Tag: *tag}, nil
	}
}

// UpdateTagInput is the payload for updating a tag.
type UpdateTagInput struct {
	ID       string `json:"id" jsonschema:"tag id"`
	Name     string `json:"name,omitempty" jsonschema:"replacement tag name"`
	HexColor string `json:"hex_color,omitempty" jsonschema:"replacement display color"`
}

func updateTagHandler(api API) mcp.ToolHandlerFor[UpdateTagInput, TagOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in UpdateTagInput) (*mcp.CallToolResult, TagOutput, error) {
		tag, err := api.UpdateTag(ctx, in.ID, client.UpdateTagInput{Name: in.Name, HexColor: in.HexColor})
		if err != nil {
			return errorResult(err), TagOutput{}, nil
		}
		return nil, TagOutput{Tag: *tag}, nil
	}
}

// TagIDInput identifies a tag.
type TagIDInput struct {
	ID string `json:"id" jsonschema:"tag id"`
}

// DeleteTagOutput confirms a deletion.
type DeleteTagOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

func deleteTagHandler(api API) mcp.ToolHandlerFor[TagIDInput, DeleteTagOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in TagIDInput) (*mcp.CallToolResult, DeleteTagOutput, error) {
		if err := api.DeleteTag(ctx, in.ID); err != nil {
			return errorResult(err), DeleteTagOutput{}, nil
		}
		return nil, DeleteTagOutput{Deleted: true, ID: in.ID}, nil
	}
}
