package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/socialflow-dev/socialflow-mcp/apierror"
	"github.com/socialflow-dev/socialflow-mcp/client"
	"github.com/socialflow-dev/socialflow-mcp/resilience"
)

// fakeAPI satisfies API with canned responses. Any nil func falls back
// to a zero value so tests only stub what they exercise.
type fakeAPI struct {
	listPosts func(client.ListPostsParams) (*client.Page[client.Post], error)
	getPost   func(string) (*client.Post, error)
	pingErr   error
	state     resilience.BreakerState

	deletedTag string
}

func (f *fakeAPI) ListPosts(_ context.Context, params client.ListPostsParams) (*client.Page[client.Post], error) {
	if f.listPosts != nil {
		return f.listPosts(params)
	}
	return &client.Page[client.Post]{}, nil
}

func (f *fakeAPI) GetPost(_ context.Context, id string) (*client.Post, error) {
	if f.getPost != nil {
		return f.getPost(id)
	}
	return &client.Post{ID: id}, nil
}

func (f *fakeAPI) CreatePost(_ context.Context, input client.CreatePostInput) (*client.Post, error) {
	return &client.Post{ID: "p-new", Content: input.Content, Status: "draft"}, nil
}

func (f *fakeAPI) UpdatePost(_ context.Context, id string, input client.UpdatePostInput) (*client.Post, error) {
	return &client.Post{ID: id, Content: input.Content}, nil
}

func (f *fakeAPI) DeletePost(context.Context, string) error { return nil }

func (f *fakeAPI) SchedulePost(_ context.Context, id string, input client.SchedulePostInput) (*client.Post, error) {
	return &client.Post{ID: id, Status: "scheduled", ScheduledAt: input.ScheduledAt}, nil
}

func (f *fakeAPI) ListAccounts(context.Context, client.ListParams) (*client.Page[client.Account], error) {
	return &client.Page[client.Account]{
		Items: []client.Account{{ID: "a1", Provider: "mastodon"}},
		Page:  1,
		Total: 1,
	}, nil
}

func (f *fakeAPI) GetAccount(_ context.Context, id string) (*client.Account, error) {
	return &client.Account{ID: id}, nil
}

func (f *fakeAPI) ListMedia(context.Context, client.ListParams) (*client.Page[client.Media], error) {
	return &client.Page[client.Media]{}, nil
}

func (f *fakeAPI) ListTags(context.Context) ([]client.Tag, error) {
	return []client.Tag{{ID: "t1", Name: "launch"}}, nil
}

func (f *fakeAPI) CreateTag(_ context.Context, input client.CreateTagInput) (*client.Tag, error) {
	return &client.Tag{ID: "t-new", Name: input.Name, HexColor: input.HexColor}, nil
}

func (f *fakeAPI) UpdateTag(_ context.Context, id string, input client.UpdateTagInput) (*client.Tag, error) {
	return &client.Tag{ID: id, Name: input.Name, HexColor: input.HexColor}, nil
}

func (f *fakeAPI) DeleteTag(_ context.Context, id string) error {
	f.deletedTag = id
	return nil
}

func (f *fakeAPI) Ping(context.Context) error { return f.pingErr }

func (f *fakeAPI) CircuitState() resilience.BreakerState { return f.state }

func TestListPostsSuccess(t *testing.T) {
	api := &fakeAPI{
		listPosts: func(params client.ListPostsParams) (*client.Page[client.Post], error) {
			if params.Status != "scheduled" {
				t.Errorf("status filter = %q, want scheduled", params.Status)
			}
			return &client.Page[client.Post]{
				Items: []client.Post{{ID: "p1"}, {ID: "p2"}},
				Page:  1,
				Total: 2,
			}, nil
		},
	}

	result, out, err := listPostsHandler(api)(context.Background(), &mcp.CallToolRequest{}, ListPostsInput{Status: "scheduled"})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result on success, got %+v", result)
	}
	if len(out.Posts) != 2 || out.Total != 2 {
		t.Errorf("output = %+v, want 2 posts", out)
	}
}

func TestHandlerRendersAPIError(t *testing.T) {
	apiErr := &apierror.Error{
		Message:    "Validation failed",
		Status:     422,
		Kind:       apierror.KindUnprocessable,
		Retryable:  false,
		Suggestion: "Please check the input parameters.",
		ValidationErrors: map[string][]string{
			"content":     {"must not be blank"},
			"account_ids": {"at least one account is required"},
		},
	}
	api := &fakeAPI{
		listPosts: func(client.ListPostsParams) (*client.Page[client.Post], error) {
			return nil, apiErr
		},
	}

	result, _, err := listPostsHandler(api)(context.Background(), &mcp.CallToolRequest{}, ListPostsInput{})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected an IsError result")
	}

	text := result.Content[0].(*mcp.TextContent).Text
	for _, want := range []string{
		"Validation failed (status 422, UNPROCESSABLE_ENTITY)",
		"Suggestion: Please check the input parameters.",
		"account_ids: at least one account is required",
		"content: must not be blank",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered error missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "retryable") {
		t.Errorf("non-retryable error should not advertise a retry:\n%s", text)
	}

	// Fields must render in sorted order.
	if strings.Index(text, "account_ids") > strings.Index(text, "content") {
		t.Errorf("validation fields not sorted:\n%s", text)
	}
}

func TestHandlerRendersRetryableError(t *testing.T) {
	api := &fakeAPI{
		getPost: func(string) (*client.Post, error) {
			return nil, &apierror.Error{
				Message:   "Service unavailable",
				Status:    503,
				Kind:      apierror.KindServiceUnavailable,
				Retryable: true,
			}
		},
	}

	result, _, _ := getPostHandler(api)(context.Background(), &mcp.CallToolRequest{}, PostIDInput{ID: "p1"})
	if result == nil || !result.IsError {
		t.Fatal("expected an IsError result")
	}
	text := result.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "This error is retryable.") {
		t.Errorf("missing retryable line:\n%s", text)
	}
}

func TestRenderErrorOpaque(t *testing.T) {
	got := renderError(errors.New("boom"))
	if got != "boom" {
		t.Errorf("renderError = %q, want boom", got)
	}
}

func TestCreateAndSchedulePost(t *testing.T) {
	api := &fakeAPI{}

	_, created, err := createPostHandler(api)(context.Background(), &mcp.CallToolRequest{}, CreatePostInput{
		Content:    "hello fediverse",
		AccountIDs: []string{"a1"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Post.Content != "hello fediverse" || created.Post.Status != "draft" {
		t.Errorf("created = %+v", created.Post)
	}

	_, scheduled, err := schedulePostHandler(api)(context.Background(), &mcp.CallToolRequest{}, SchedulePostInput{
		ID:          created.Post.ID,
		ScheduledAt: "2026-09-01T10:00:00Z",
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if scheduled.Post.Status != "scheduled" || scheduled.Post.ScheduledAt != "2026-09-01T10:00:00Z" {
		t.Errorf("scheduled = %+v", scheduled.Post)
	}
}

func TestDeleteTag(t *testing.T) {
	api := &fakeAPI{}
	_, out, err := deleteTagHandler(api)(context.Background(), &mcp.CallToolRequest{}, TagIDInput{ID: "t9"})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !out.Deleted || out.ID != "t9" {
		t.Errorf("output = %+v", out)
	}
	if api.deletedTag != "t9" {
		t.Errorf("deleted id = %q, want t9", api.deletedTag)
	}
}

func TestHealthHealthy(t *testing.T) {
	api := &fakeAPI{state: resilience.BreakerState{Phase: resilience.PhaseClosed}}
	_, out, err := healthHandler(api)(context.Background(), &mcp.CallToolRequest{}, HealthInput{})
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if !out.Healthy || out.Error != "" {
		t.Errorf("output = %+v, want healthy", out)
	}
	if out.CircuitPhase != "closed" {
		t.Errorf("phase = %q, want closed", out.CircuitPhase)
	}
}

func TestHealthUnhealthyReportsCircuit(t *testing.T) {
	api := &fakeAPI{
		pingErr: &apierror.Error{
			Message: "Service temporarily unavailable due to repeated failures",
			Status:  503,
			Kind:    apierror.KindCircuitOpen,
		},
		state: resilience.BreakerState{Phase: resilience.PhaseOpen, ConsecutiveFailures: 5},
	}

	_, out, err := healthHandler(api)(context.Background(), &mcp.CallToolRequest{}, HealthInput{})
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if out.Healthy {
		t.Error("expected unhealthy")
	}
	if !strings.Contains(out.Error, "CIRCUIT_OPEN") {
		t.Errorf("error = %q, want circuit-open kind", out.Error)
	}
	if out.CircuitPhase != "open" || out.ConsecutiveFailures != 5 {
		t.Errorf("circuit = %s/%d, want open/5", out.CircuitPhase, out.ConsecutiveFailures)
	}
}

func TestRegisterDoesNotPanic(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0"}, nil)
	Register(server, &fakeAPI{})
}
