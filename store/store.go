// Package store persists tasks. Store is implemented by SQLite, MongoDB and
// Google Tasks backends; Open picks one from a connection URI.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"task-manager/models"
)

// ErrNotFound is returned by Delete when no task has the given id.
var ErrNotFound = errors.New("task not found")

// Store is the persistence contract the API depends on.
type Store interface {
	// Create trims and validates title, then persists a new task.
	Create(ctx context.Context, title string) (*models.Task, error)
	// List returns every task, newest first.
	List(ctx context.Context) ([]models.Task, error)
	// Delete removes the task and returns it as it was before deletion.
	Delete(ctx context.Context, id string) (*models.Task, error)
	// ValidID reports whether id is well formed for this backend.
	ValidID(id string) bool
	Close() error
}

// Options configures Open.
type Options struct {
	// URI selects the backend by scheme.
	URI string
	// Database is the Mongo database name.
	Database string
	// CredentialsDir holds oauth_client.json and token.json for Google Tasks.
	CredentialsDir string
	// Timeout bounds each call to a remote backend.
	Timeout time.Duration
}

// Open connects to the backend named by opts.URI and verifies the connection.
func Open(ctx context.Context, opts Options) (Store, error) {
	uri := strings.TrimSpace(opts.URI)
	if uri == "" {
		return nil, errors.New("store uri is empty")
	}

	var (
		st  Store
		err error
	)
	switch Kind(uri) {
	case "mongodb":
		st, err = OpenMongo(ctx, uri, opts.Database, opts.Timeout)
	case "googletasks":
		listID := strings.TrimPrefix(uri, GoogleTasksScheme)
		st, err = OpenGoogleTasks(ctx, opts.CredentialsDir, listID, opts.Timeout)
	case "sqlite":
		st, err = OpenSQLite(ctx, uri)
	default:
		return nil, fmt.Errorf("unsupported store uri %q", uri)
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// Kind names the backend Open picks for uri.
func Kind(uri string) string {
	switch {
	case strings.HasPrefix(uri, "mongodb://"), strings.HasPrefix(uri, "mongodb+srv://"):
		return "mongodb"
	case strings.HasPrefix(uri, GoogleTasksScheme):
		return "googletasks"
	case strings.HasPrefix(uri, "sqlite://"), strings.HasPrefix(uri, "file:"):
		return "sqlite"
	case strings.Contains(uri, "://"):
		return "unknown"
	default:
		return "sqlite"
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
