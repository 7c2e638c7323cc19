package activity

import "context"

// RequestMeta is the caller information stamped on every event.
type RequestMeta struct {
	RequestID string
	IP        string
	UserAgent string
}

type metaKey struct{}

// WithRequestMeta returns a copy of ctx carrying meta.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, metaKey{}, meta)
}

// MetaFrom returns the request metadata in ctx, or the zero value.
func MetaFrom(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(metaKey{}).(RequestMeta)
	return meta
}
