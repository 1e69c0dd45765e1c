// Package seed fills a store with tasks, either generated or read from a file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/BurntSushi/toml"
	"github.com/sourcegraph/conc/pool"
	"gopkg.in/yaml.v3"

	"task-manager/models"
)

// DefaultWorkers is the number of concurrent creates Run uses when asked for
// zero or fewer.
const DefaultWorkers = 4

// Creator is the part of store.Store seeding needs.
type Creator interface {
	Create(ctx context.Context, title string) (*models.Task, error)
}

// Entry is one task in a seed file.
type Entry struct {
	Title string `toml:"title" yaml:"title"`
}

// File is the layout of a seed file:
//
//	[[tasks]]
//	title = "Buy milk"
//
// or the YAML equivalent, tasks: [{title: Buy milk}].
type File struct {
	Tasks []Entry `toml:"tasks" yaml:"tasks"`
}

// Generate returns n placeholder titles, "Task 1" through "Task n".
func Generate(n int) []string {
	if n <= 0 {
		return nil
	}
	titles := make([]string, n)
	for i := range titles {
		titles[i] = fmt.Sprintf("Task %d", i+1)
	}
	return titles
}

// LoadFile reads titles from a .toml, .yaml or .yml seed file.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported seed file extension %q (want .toml, .yaml or .yml)", ext)
	}

	titles := make([]string, 0, len(f.Tasks))
	for i, e := range f.Tasks {
		title, err := models.NormalizeTitle(e.Title)
		if err != nil {
			return nil, fmt.Errorf("%s: task %d: %w", path, i+1, err)
		}
		titles = append(titles, title)
	}
	if len(titles) == 0 {
		return nil, fmt.Errorf("%s: no tasks", path)
	}
	return titles, nil
}

// Run creates every title with at most workers concurrent calls. The first
// failure cancels the remaining creates and is the error returned; the count
// of tasks that were stored is returned either way.
func Run(ctx context.Context, c Creator, titles []string, workers int) (int, error) {
	if c == nil {
		return 0, errors.New("seed: nil store")
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var created atomic.Int64
	p := pool.New().
		WithMaxGoroutines(workers).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	for _, title := range titles {
		title := title
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := c.Create(ctx, title); err != nil {
				return fmt.Errorf("create %q: %w", title, err)
			}
			created.Add(1)
			return nil
		})
	}

	err := p.Wait()
	return int(created.Load()), err
}
