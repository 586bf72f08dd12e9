package courseclient

import "context"

type ctxKey string

const (
	ctxKeyRequestID ctxKey = "course_request_id"
	ctxKeyUser      ctxKey = "course_user"
	ctxKeyRoles     ctxKey = "course_roles"
)

// WithRequestID stores a request correlation ID in the context. The
// transport's request-ID middleware reuses it instead of minting a new one.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

// RequestIDFromContext extracts the request correlation ID from the context.
func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyRequestID).(string)
	return v
}

// WithUser stores the authenticated user's profile in the context.
func WithUser(ctx context.Context, user *UserInfo) context.Context {
	return context.WithValue(ctx, ctxKeyUser, user)
}

// UserFromContext extracts the authenticated user's profile from the context.
func UserFromContext(ctx context.Context) *UserInfo {
	v, _ := ctx.Value(ctxKeyUser).(*UserInfo)
	return v
}

// WithRoles stores the user's role codes in the context.
func WithRoles(ctx context.Context, roles []Role) context.Context {
	return context.WithValue(ctx, ctxKeyRoles, roles)
}

// RolesFromContext extracts the user's role codes from the context.
func RolesFromContext(ctx context.Context) []Role {
	v, _ := ctx.Value(ctxKeyRoles).([]Role)
	return v
}
