package auth

import "context"

type ctxKey string

const contextPrincipalKey ctxKey = "principal"

// Principal is the authenticated caller. It is only ever built by the auth
// middleware from a verified token, never from request input.
type Principal struct {
	UserID   int64
	Username string
	Role     *Role
}

func (p *Principal) Can(perm Permission) bool {
	return p != nil && HasPermission(p.Role, perm)
}

func (p *Principal) IsAdmin() bool {
	return p != nil && IsAdmin(p.Role)
}

func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextPrincipalKey, p)
}

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	if ctx == nil {
		return nil, false
	}
	p, ok := ctx.Value(contextPrincipalKey).(*Principal)
	return p, ok && p != nil
}

// UsernameFromContext returns the principal's username, or "" when the
// request was not authenticated.
func UsernameFromContext(ctx context.Context) string {
	if p, ok := PrincipalFromContext(ctx); ok {
		return p.Username
	}
	return ""
}
