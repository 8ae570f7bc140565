package shared

import "context"

type ownerContextKey struct{}

// ContextWithOwner stores the authenticated owner id in context.
func ContextWithOwner(ctx context.Context, ownerID int64) context.Context {
	return context.WithValue(ctx, ownerContextKey{}, ownerID)
}

// OwnerFromContext extracts the owner id from context. Zero means unauthenticated.
func OwnerFromContext(ctx context.Context) int64 {
	id, _ := ctx.Value(ownerContextKey{}).(int64)
	return id
}
