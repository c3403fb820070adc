// Package registry provides a global registry of landmark source factories.
// Sources register themselves in init() functions, allowing the CLI to
// discover and open them by name without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/handflap/internal/config"
	"github.com/vovakirdan/handflap/internal/core"
)

// Source is the interface every landmark source implements.
// Sources are polled once per frame from the loop goroutine.
type Source interface {
	// Sample returns the tracked landmark for this frame.
	// A sample with OK=false means nothing was detected; that is not an error.
	// An error means the source can no longer deliver samples and the
	// session must end.
	Sample(ctx context.Context) (core.Sample, error)

	// Close releases the camera, subprocess or file behind the source.
	Close() error
}

// Steerable is implemented by sources driven from the keyboard.
type Steerable interface {
	Steer(a core.Action)
}

// Options carries everything a factory may need to open a source.
type Options struct {
	Tracking  config.Tracking
	TracePath string
	Logger    *log.Logger
}

// SourceInfo contains metadata about a registered source.
type SourceInfo struct {
	Name        string
	Description string
}

// Factory opens a new source.
type Factory func(opts Options) (Source, error)

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a source factory to the registry.
// Typically called from a source package's init() function.
// Panics if a source with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: source %q already registered", name))
	}

	factories[name] = f
	descriptions[name] = description
}

// List returns information about all registered sources, sorted by name.
func List() []SourceInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SourceInfo, 0, len(factories))
	for name := range factories {
		result = append(result, SourceInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Open creates a source by its name.
// Returns an error if the name is not registered or the factory fails.
func Open(name string, opts Options) (Source, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown source %q", name)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	src, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: open %s: %w", name, err)
	}
	return src, nil
}

// Exists checks if a source with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
