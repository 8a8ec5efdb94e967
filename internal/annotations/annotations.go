// Package annotations carries the per-identifier inferred-type records a
// checker run produces alongside its diagnostics, and the sink
// interfaces both are delivered through: plain in-process Go
// interfaces, not a wire protocol, since there is no analysis server in
// this checker.
package annotations

import "github.com/funvibe/funxy-check/internal/diagnostics"

// Annotation records the resolved type of one identifier occurrence.
type Annotation struct {
	File       string
	Line       int
	Column     int
	Identifier string
	TypeText   string
}

// DiagnosticSink receives diagnostics as they are discovered during a walk.
type DiagnosticSink interface {
	Diagnostic(*diagnostics.DiagnosticError)
}

// AnnotationSink receives type annotations as they are discovered.
type AnnotationSink interface {
	Annotate(Annotation)
}

// Collector is the in-memory sink pair the CLI and tests use: it simply
// accumulates both streams for later rendering or assertion.
type Collector struct {
	Diagnostics []*diagnostics.DiagnosticError
	Annotations []Annotation
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Diagnostic(d *diagnostics.DiagnosticError) {
	c.Diagnostics = append(c.Diagnostics, d)
}

func (c *Collector) Annotate(a Annotation) {
	c.Annotations = append(c.Annotations, a)
}
