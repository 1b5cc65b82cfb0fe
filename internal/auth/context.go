package auth

import "context"

type sessionContextKey struct{}

// WithSession stores the session in ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// SessionFrom extracts the session from ctx, nil when absent.
func SessionFrom(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionContextKey{}).(*Session)
	return s
}

// Actor names the user behind ctx for logs, "system" when nobody is logged in.
func Actor(ctx context.Context) string {
	if s := SessionFrom(ctx); s.Active() {
		return s.Username
	}
	return "system"
}
