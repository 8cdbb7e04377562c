// Package auth verifies caller identity. Tokens are issued by the
// identity service and verified here with a shared HMAC secret; the
// resulting Session is passed explicitly through the request context,
// never held in a global.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Roles the identity service may assign a caller.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// Session is the authenticated caller of one request.
type Session struct {
	UserID uuid.UUID
	Role   string
}

func (s *Session) IsStudent() bool    { return s.Role == RoleStudent }
func (s *Session) IsInstructor() bool { return s.Role == RoleInstructor }

type contextKey struct{}

// WithSession attaches the session to the context.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the request's session, or nil when the request was
// not authenticated.
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(contextKey{}).(*Session)
	return sess
}
