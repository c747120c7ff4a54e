// Package backend is the client for the hosted data platform that owns all
// persistence: email/password auth sessions, the row store behind the
// products/orders/delivery_info/reviews tables, and the public image bucket.
// Controllers depend on the small interfaces below so tests can swap in the
// in-memory fake from backendtest.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Session is a live admin session issued by the auth service.
type Session struct {
	AccessToken string    `json:"access_token"`
	Email       string    `json:"email"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ErrNoSession is returned by GetSession when the token is missing, invalid
// or expired.
var ErrNoSession = errors.New("no live session")

// Error is a failed backend call: the HTTP status the service answered with
// and its message. User-facing text is never built from it.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend: status %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is the backend saying "no such row".
func IsNotFound(err error) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.Status == 404 || be.Status == 406
	}
	return false
}

// Filter is an equality filter on one column. Values are compared as the
// row store renders them, so ids and enums filter as plain strings.
type Filter struct {
	Column string
	Value  string
}

// SelectQuery is one read against a table, assembled by Query.
type SelectQuery struct {
	Columns   []string
	Filters   []Filter
	OrderBy   string
	Ascending bool
	From      int
	To        int
	HasRange  bool
	Single    bool
}

// RowStore is the table CRUD surface of the platform.
type RowStore interface {
	Select(ctx context.Context, table string, q SelectQuery, dest any) error
	Count(ctx context.Context, table string) (int, error)
	Insert(ctx context.Context, table string, rows any) error
	Update(ctx context.Context, table string, patch map[string]any, filters ...Filter) error
	Upsert(ctx context.Context, table string, row any) error
}

// SessionAuth is the email/password auth surface of the platform.
type SessionAuth interface {
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context, token string) error
	GetSession(ctx context.Context, token string) (Session, error)
}

// BlobStore is the file storage surface of the platform.
type BlobStore interface {
	Upload(ctx context.Context, bucket, filename, contentType string, r io.Reader) error
	PublicURL(bucket, filename string) string
}
