package api

import "context"

type ctxKey string

const ctxKeyAdmin ctxKey = "admin"

// WithAdmin marks the request as carrying a valid admin session.
func WithAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKeyAdmin, true)
}

func IsAdmin(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyAdmin).(bool)
	return v
}
