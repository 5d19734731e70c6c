package auth

import "context"

type ctxKey string

const claimsKey ctxKey = "auth_claims"

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleAuthor = "author"
)

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok && c != nil
}

// CanManageContent reports whether role may use the admin API.
func CanManageContent(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}
