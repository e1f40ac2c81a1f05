package contextkeys

// ContextKey is the shared type for values stored in request contexts.
type ContextKey string

const (
	UserIDKey ContextKey = "userID"
	RoleKey   ContextKey = "role"
)
