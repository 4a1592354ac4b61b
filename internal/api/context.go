package api

import "context"

// Caller is the authenticated identity attached to the request context.
// Role mirrors the users table at the time the request was authenticated.
type Caller struct {
	ID    string
	Email string
	Role  string
}

type ctxKey string

const ctxKeyCaller ctxKey = "caller"

func WithCaller(ctx context.Context, c *Caller) context.Context {
	return context.WithValue(ctx, ctxKeyCaller, c)
}

func CallerFromContext(ctx context.Context) *Caller {
	v := ctx.Value(ctxKeyCaller)
	if v == nil {
		return nil
	}
	c, _ := v.(*Caller)
	return c
}
