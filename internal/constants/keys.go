package constants

const (
	// Context Keys
	ContextKeyIsAdmin = "isAdmin"

	// Session Keys
	SessionName             = "gemblog_session"
	SessionKeyAuthenticated = "gemini-blog-auth"
	SessionValueTrue        = "true"

	// Store Keys
	StoreKeyPosts = "gemini-blog-posts"

	// Views
	CategoryAll      = "All"
	DefaultNewsTopic = "latest AI advancements"
	ExcerptLength    = 100
	ReadNextCount    = 3
)
