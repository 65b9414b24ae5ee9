package client

// Page wraps a paginated list response.
type Page[T any] struct {
	Items   []T `json:"data"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

// Post is a draft, scheduled, or published post.
type Post struct {
	ID          string   `json:"id"`
	Status      string   `json:"status"`
	Content     string   `json:"content"`
	AccountIDs  []string `json:"account_ids"`
	Tags        []string `json:"tags,omitempty"`
	MediaIDs    []string `json:"media_ids,omitempty"`
	ScheduledAt string   `json:"scheduled_at,omitempty"`
	PublishedAt string   `json:"published_at,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

// Account is a connected social account.
type Account struct {
	ID         string `json:"id"`
	Provider   string `json:"provider"`
	Name       string `json:"name"`
	Username   string `json:"username,omitempty"`
	Authorized bool   `json:"authorized"`
}

// Media is an uploaded media asset.
type Media struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Name      string `json:"name,omitempty"`
	MimeType  string `json:"mime_type,omitempty"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Tag labels posts for filtering.
type Tag struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	HexColor string `json:"hex_color,omitempty"`
}

// ListParams are the common pagination parameters.
type ListParams struct {
	Page    int
	PerPage int
}

// ListPostsParams filter and paginate post listings.
type ListPostsParams struct {
	Page    int
	PerPage int
	// Status filters by post status: draft, scheduled, published, failed.
	Status string
	// Tag filters by tag name.
	Tag string
}

// CreatePostInput is the payload for creating a post.
type CreatePostInput struct {
	Content     string   `json:"content"`
	AccountIDs  []string `json:"account_ids"`
	Tags        []string `json:"tags,omitempty"`
	MediaIDs    []string `json:"media_ids,omitempty"`
	ScheduledAt string   `json:"scheduled_at,omitempty"`
}

// UpdatePostInput is the payload for updating a post. Nil slices and
// empty strings leave the corresponding field unchanged.
type UpdatePostInput struct {
	Content     string   `json:"content,omitempty"`
	AccountIDs  []string `json:"account_ids,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	MediaIDs    []string `json:"media_ids,omitempty"`
	ScheduledAt string   `json:"scheduled_at,omitempty"`
}

// SchedulePostInput sets the publish time for a post.
type SchedulePostInput struct {
	// ScheduledAt is an ISO 8601 timestamp.
	ScheduledAt string `json:"scheduled_at"`
	Timezone    string `json:"timezone,omitempty"`
}

// CreateTagInput is the payload for creating a tag.
type CreateTagInput struct {
	Name     string `json:"name"`
	HexColor string `json:"hex_color,omitempty"`
}

// UpdateTagInput is the payload for renaming or recoloring a tag.
type UpdateTagInput struct {
	Name     string `json:"name,omitempty"`
	HexColor string `json:"hex_color,omitempty"`
}
