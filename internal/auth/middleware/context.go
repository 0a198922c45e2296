package auth

import "context"

type subjectKey struct{}

// WithSubject stores the authenticated user id. The quiz manager keys
// per-user engines off this value, so it must be set before any quiz route.
func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, subjectKey{}, sub)
}

// SubjectFromContext returns the authenticated user id, or "".
func SubjectFromContext(ctx context.Context) string {
	s, _ := ctx.Value(subjectKey{}).(string)
	return s
}
