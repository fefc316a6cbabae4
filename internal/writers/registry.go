package writers

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Registry maps an output format name to its writer. Writer files register
// themselves in init blocks; the last registration wins.
type Registry[T any] struct {
	kind string
	m    map[string]T
}

func newRegistry[T any](kind string) *Registry[T] {
	return &Registry[T]{kind: kind, m: map[string]T{}}
}

// Register installs fn under format.
func (r *Registry[T]) Register(format string, fn T) { r.m[format] = fn }

// Lookup returns the writer of format.
func (r *Registry[T]) Lookup(format string) (T, error) {
	fn, ok := r.m[format]
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown %s format %q (have %s)", r.kind, format, strings.Join(r.Formats(), ", "))
	}
	return fn, nil
}

// Formats lists the registered format names, sorted.
func (r *Registry[T]) Formats() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Sink consumes design results one target at a time. Close flushes
// anything buffered.
type Sink interface {
	Write(Result) error
	Close() error
}

// Registries of the two tools.
var (
	DesignWriters = newRegistry[func(w io.Writer, opt Options) Sink]("design")
	ThermoWriters = newRegistry[func(w io.Writer, t Thermo, opt Options) error]("thermo")
)
