package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/socialflow-dev/socialflow-mcp/client"
)

// PageInput paginates listings.
type PageInput struct {
	Page    int `json:"page,omitempty" jsonschema:"page number, starting at 1"`
	PerPage int `json:"per_page,omitempty" jsonschema:"results per page"`
}

// ListAccountsOutput is a page of connected accounts.
type ListAccountsOutput struct {
	Accounts []client.Account `json:"accounts"`
	Page     int              `json:"page"`
	Total    int              `json:"total"`
}

func listAccountsHandler(api API) mcp.ToolHandlerFor[PageInput, ListAccountsOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in PageInput) (*mcp.CallToolResult, ListAccountsOutput, error) {
		page, err := api.ListAccounts(ctx, client.ListParams{Page: in.Page, PerPage: in.PerPage})
		if err != nil {
			return errorResult(err), ListAccountsOutput{}, nil
		}
		return nil, ListAccountsOutput{Accounts: page.Items, Page: page.Page, Total: page.Total}, nil
	}
}

// AccountIDInput identifies an account.
type AccountIDInput struct {
	ID string `json:"id" jsonschema:"account id"`
}

// AccountOutput wraps a single account.
type AccountOutput struct {
	Account client.Account `json:"account"`
}

func getAccountHandler(api API) mcp.ToolHandlerFor[AccountIDInput, AccountOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in AccountIDInput) (*mcp.CallToolResult, AccountOutput, error) {
		account, err := api.GetAccount(ctx, in.ID)
		if err != nil {
			return errorResult(err), AccountOutput{}, nil
		}
		return nil, AccountOutput{Account: *account}, nil
	}
}
