package auth

import "context"

type contextKey string

const claimsKey contextKey = "auth_claims"

// Claims is the verified identity produced by Authenticate.
type Claims struct {
	Email string
}

func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}
