package check

import "context"

// Checker gathers one section of host telemetry and classifies every
// reading it produces. Partial failures surface as INFO results inside
// the slice; a returned error means the whole section was unreachable.
type Checker interface {
	Name() string
	Check(ctx context.Context) ([]Result, error)
}
