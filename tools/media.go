package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/socialflow-dev/socialflow-mcp/client"
)

// ListMediaOutput is a page of media assets.
type ListMediaOutput struct {
	Media []client.Media `json:"media"`
	Page  int            `json:"page"`
	Total int            `json:"total"`
}

func listMediaHandler(api API) mcp.ToolHandlerFor[PageInput, ListMediaOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in PageInput) (*mcp.CallToolResult, ListMediaOutput, error) {
		page, err := api.ListMedia(ctx, client.ListParams{Page: in.Page, PerPage: in.PerPage})
		if err != nil {
			return errorResult(err), ListMediaOutput{}, nil
		}
		return nil, ListMediaOutput{Media: page.Items, Page: page.Page, Total: page.Total}, nil
	}
}
