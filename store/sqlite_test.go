package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()

	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_CreateTrimsAndAssignsFields(t *testing.T) {
	s := newTestSQLite(t)
	before := time.Now().UTC().Add(-time.Second)

	task, err := s.Create(context.Background(), "  Buy milk  ")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if task.Title != "Buy milk" {
		t.Errorf("Title = %q, want %q", task.Title, "Buy milk")
	}
	if !s.ValidID(task.ID) {
		t.Errorf("ID %q is not a valid id for the store", task.ID)
	}
	if task.CreatedAt.Before(before) {
		t.Errorf("CreatedAt = %v, want after %v", task.CreatedAt, before)
	}
	if task.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt location = %v, want UTC", task.CreatedAt.Location())
	}
	if !task.UpdatedAt.Equal(task.CreatedAt) {
		t.Errorf("UpdatedAt = %v, want %v", task.UpdatedAt, task.CreatedAt)
	}
}

func TestSQLite_CreateRejectsInvalidTitles(t *testing.T) {
	s := newTestSQLite(t)

	tests := []struct {
		name    string
		title   string
		wantMsg string
	}{
		{"empty", "", "Task validation failed: title: Task title is required"},
		{"whitespace", "   ", "Task validation failed: title: Task title is required"},
		{"too long", strings.Repeat("x", 201), "Task validation failed: title: Task title must not exceed 200 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), tt.title)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Create() error = %v, want *ValidationError", err)
			}
			if verr.Error() != tt.wantMsg {
				t.Errorf("error = %q, want %q", verr.Error(), tt.wantMsg)
			}
		})
	}

	tasks, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("len(tasks) = %d, want 0 after rejected creates", len(tasks))
	}
}

func TestSQLite_ListNewestFirst(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	titles := []string{"first", "second", "third", "fourth"}
	for _, title := range titles {
		if _, err := s.Create(ctx, title); err != nil {
			t.Fatalf("Create(%q) error = %v", title, err)
		}
	}

	tasks, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != len(titles) {
		t.Fatalf("len(tasks) = %d, want %d", len(tasks), len(titles))
	}
	for i, task := range tasks {
		want := titles[len(titles)-1-i]
		if task.Title != want {
			t.Errorf("tasks[%d].Title = %q, want %q", i, task.Title, want)
		}
		if i > 0 && task.CreatedAt.After(tasks[i-1].CreatedAt) {
			t.Errorf("tasks[%d] created after tasks[%d]", i, i-1)
		}
	}
}

func TestSQLite_ListEmptyIsNotNil(t *testing.T) {
	s := newTestSQLite(t)

	tasks, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if tasks == nil {
		t.Error("List() = nil, want empty slice")
	}
}

func TestSQLite_DeleteReturnsSnapshot(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	keep, _ := s.Create(ctx, "keep")
	drop, err := s.Create(ctx, "drop")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	deleted, err := s.Delete(ctx, drop.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted.ID != drop.ID || deleted.Title != "drop" {
		t.Errorf("Delete() = %+v, want snapshot of %+v", deleted, drop)
	}
	if !deleted.CreatedAt.Equal(drop.CreatedAt) {
		t.Errorf("deleted.CreatedAt = %v, want %v", deleted.CreatedAt, drop.CreatedAt)
	}

	tasks, _ := s.List(ctx)
	if len(tasks) != 1 || tasks[0].ID != keep.ID {
		t.Errorf("List() after delete = %+v, want only %q", tasks, keep.ID)
	}

	if _, err := s.Delete(ctx, drop.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestSQLite_DeleteMissing(t *testing.T) {
	s := newTestSQLite(t)

	_, err := s.Delete(context.Background(), "7d444840-9dc0-11d1-b245-5ffdce74fad2")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestSQLite_ValidID(t *testing.T) {
	s := newTestSQLite(t)

	tests := []struct {
		id   string
		want bool
	}{
		{"7d444840-9dc0-11d1-b245-5ffdce74fad2", true},
		{"7D444840-9DC0-11D1-B245-5FFDCE74FAD2", true},
		{"7d4448409dc011d1b2455ffdce74fad2", false},
		{"{7d444840-9dc0-11d1-b245-5ffdce74fad2}", false},
		{"507f1f77bcf86cd799439011", false},
		{"not-an-id", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := s.ValidID(tt.id); got != tt.want {
			t.Errorf("ValidID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	ctx := context.Background()

	s, err := OpenSQLite(ctx, "sqlite://"+path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	created, err := s.Create(ctx, "survives restart")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	s.Close()

	s, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	tasks, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("len(tasks) = %d, want 1", len(tasks))
	}
	got := tasks[0]
	if got.ID != created.ID || got.Title != created.Title || !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("reloaded task = %+v, want %+v", got, created)
	}
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"tasks.db", "tasks.db?_time_format=sqlite&_pragma=busy_timeout(5000)"},
		{"sqlite:///var/lib/tasks.db", "/var/lib/tasks.db?_time_format=sqlite&_pragma=busy_timeout(5000)"},
		{"file:tasks.db?mode=rwc", "file:tasks.db?mode=rwc&_time_format=sqlite&_pragma=busy_timeout(5000)"},
		{"tasks.db?_pragma=busy_timeout(100)", "tasks.db?_pragma=busy_timeout(100)&_time_format=sqlite"},
	}
	for _, tt := range tests {
		if got := sqliteDSN(tt.uri); got != tt.want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

var _ Store = (*SQLite)(nil)
