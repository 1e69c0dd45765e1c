package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasksapi "google.golang.org/api/tasks/v1"

	"task-manager/models"
)

const (
	// GoogleTasksScheme prefixes store URIs backed by a Google Tasks list,
	// e.g. googletasks://@default.
	GoogleTasksScheme = "googletasks://"

	// DefaultTaskList is the user's default Google Tasks list.
	DefaultTaskList = "@default"

	// OAuthClientFile and TokenFile live in the credentials directory.
	OAuthClientFile = "oauth_client.json"
	TokenFile       = "token.json"

	googleTasksScope = "https://www.googleapis.com/auth/tasks"
	googlePageSize   = 100
)

// Google Tasks ids are opaque base64url strings.
var googleTaskIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// GoogleTasks uses one Google Tasks list as the task collection. Tasks are
// never patched, so the API's updated timestamp is the creation time.
type GoogleTasks struct {
	svc     *tasksapi.Service
	listID  string
	timeout time.Duration
}

// OpenGoogleTasks authenticates with the OAuth client and token stored in
// credentialsDir and checks that listID exists.
func OpenGoogleTasks(ctx context.Context, credentialsDir, listID string, timeout time.Duration) (*GoogleTasks, error) {
	clientJSON, err := os.ReadFile(filepath.Join(credentialsDir, OAuthClientFile))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", OAuthClientFile, err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, googleTasksScope)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", OAuthClientFile, err)
	}

	tokenData, err := os.ReadFile(filepath.Join(credentialsDir, TokenFile))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", TokenFile, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", TokenFile, err)
	}

	// The token source refreshes on its own; it must outlive ctx.
	httpClient := oauth2.NewClient(context.Background(), oauthConfig.TokenSource(context.Background(), &token))
	return NewGoogleTasks(ctx, listID, timeout, option.WithHTTPClient(httpClient))
}

// NewGoogleTasks builds the backend from explicit client options. Tests point
// it at a fake server with option.WithEndpoint.
func NewGoogleTasks(ctx context.Context, listID string, timeout time.Duration, opts ...option.ClientOption) (*GoogleTasks, error) {
	if listID == "" {
		listID = DefaultTaskList
	}
	svc, err := tasksapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create tasks service: %w", err)
	}
	g := &GoogleTasks{svc: svc, listID: listID, timeout: timeout}

	callCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()
	if _, err := svc.Tasklists.Get(listID).Context(callCtx).Do(); err != nil {
		return nil, fmt.Errorf("open task list %s: %w", listID, err)
	}
	return g, nil
}

// Create inserts a task at the top of the list.
func (g *GoogleTasks) Create(ctx context.Context, title string) (*models.Task, error) {
	title, err := prepareTitle(title)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	created, err := g.svc.Tasks.Insert(g.listID, &tasksapi.Task{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return googleToModel(created)
}

// List pages through the whole list and sorts newest first.
func (g *GoogleTasks) List(ctx context.Context) ([]models.Task, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	result := make([]models.Task, 0)
	call := g.svc.Tasks.List(g.listID).
		MaxResults(googlePageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false)
	err := call.Pages(ctx, func(resp *tasksapi.Tasks) error {
		for _, item := range resp.Items {
			task, err := googleToModel(item)
			if err != nil {
				return err
			}
			result = append(result, *task)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	// Items arrive in list position order, which already puts inserts first;
	// the stable sort keeps that order for equal timestamps.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Delete fetches the task for the snapshot, then deletes it.
func (g *GoogleTasks) Delete(ctx context.Context, id string) (*models.Task, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	existing, err := g.svc.Tasks.Get(g.listID, id).Context(ctx).Do()
	if isGoogleNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	if existing.Deleted {
		return nil, ErrNotFound
	}
	task, err := googleToModel(existing)
	if err != nil {
		return nil, err
	}

	err = g.svc.Tasks.Delete(g.listID, id).Context(ctx).Do()
	if isGoogleNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete task %s: %w", id, err)
	}
	return task, nil
}

// ValidID accepts base64url-shaped ids.
func (g *GoogleTasks) ValidID(id string) bool {
	return googleTaskIDPattern.MatchString(id)
}

// Close is a no-op; the HTTP client holds no resources that need releasing.
func (g *GoogleTasks) Close() error {
	return nil
}

func googleToModel(t *tasksapi.Task) (*models.Task, error) {
	updated, err := time.Parse(time.RFC3339Nano, t.Updated)
	if err != nil {
		return nil, fmt.Errorf("task %s: parse updated %q: %w", t.Id, t.Updated, err)
	}
	updated = updated.UTC()
	return &models.Task{
		ID:        t.Id,
		Title:     t.Title,
		CreatedAt: updated,
		UpdatedAt: updated,
	}, nil
}

func isGoogleNotFound(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}
