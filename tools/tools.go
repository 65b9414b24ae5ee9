package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/socialflow-dev/socialflow-mcp/client"
	"github.com/socialflow-dev/socialflow-mcp/resilience"
)

// API is the subset of the SocialFlow client the tools call. Satisfied
// by *client.Client; narrowed to an interface so tests can fake it.
type API interface {
	ListPosts(ctx context.Context, params client.ListPostsParams) (*client.Page[client.Post], error)
	GetPost(ctx context.Context, id string) (*client.Post, error)
	CreatePost(ctx context.Context, input client.CreatePostInput) (*client.Post, error)
	UpdatePost(ctx context.Context, id string, input client.UpdatePostInput) (*client.Post, error)
	DeletePost(ctx context.Context, id string) error
	SchedulePost(ctx context.Context, id string, input client.SchedulePostInput) (*client.Post, error)

	ListAccounts(ctx context.Context, params client.ListParams) (*client.Page[client.Account], error)
	GetAccount(ctx context.Context, id string) (*client.Account, error)

	ListMedia(ctx context.Context, params client.ListParams) (*client.Page[client.Media], error)

	ListTags(ctx context.Context) ([]client.Tag, error)
	CreateTag(ctx context.Context, input client.CreateTagInput) (*client.Tag, error)
	UpdateTag(ctx context.Context, id string, input client.UpdateTagInput) (*client.Tag, error)
	DeleteTag(ctx context.Context, id string) error

	Ping(ctx context.Context) error
	CircuitState() resilience.BreakerState
}

// Register adds all SocialFlow tools to the MCP server.
func Register(server *mcp.Server, api API) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "socialflow_list_posts",
		Description: "List posts with optional status and tag filters. Paginated.",
	}, listPostsHandler(api))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "socialflow_get_post",
		Description: "Get a single post by id.",
	}, getPostHandler(api))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "socialflow_create_post",
		Description: "Create a post. Drafted unless scheduled_at is set.",
	}, createPostHandler(api))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "socialflow_update_post",
		Description: "Update an existing post. Omitted fields are left unchanged.",
	}, updatePostHandler(api))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "socialflow_delete_post",
		Description: "Delete a post by id.",
	}, deletePostHandler(api))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "socialflow_schedule_post",
		Description: "Set the publish time for a post.",
	}, schedulePostHandler(api))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "socialflow_list_accounts",
		Description: "List connected social accounts. Paginated.",
	}, listAccountsHandler(api))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "socialflow_get_account",
		Description: "Get a connected social account by id.",
	}, getAccountHandler(api))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "socialflow_list_media",
		Description: "List uploaded media assets. Paginated.",
	}, listMediaHandler(api))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "socialflow_list_tags",
		Description: "List all tags.",
	}, listTagsHandler(api))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "socialflow_create_tag",
		Description: "Create a tag.",
	}, createTagHandler(api))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "socialflow_update_tag",
		Description: "Rename or recolor a tag. Omitted fields are left unchanged.",
	}, updateTagHandler(api))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "socialflow_delete_tag",
		Description: "Delete a tag by id.",
	}, deleteTagHandler(api))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "socialflow_health",
		Description: "Probe the SocialFlow API and report the circuit breaker state.",
	}, healthHandler(api))
}
