// Package normalize provides a small, generic step pipeline for cleaning up
// extracted records. Steps run strictly in order for each record; a failing
// step drops that record while the rest keep flowing.
package normalize

import (
	"context"
	"log"
)

// Step represents a single normalization operation that mutates the given
// record in place. Returning an error marks the record malformed; the
// pipeline logs the error and drops the record without aborting the others.
//
// The context can be used to observe cancellation or timeouts.
type Step[T any] func(ctx context.Context, item *T) error

// Pipeline applies a fixed sequence of steps to each record it is given.
// Pipeline is generic over the record type T.
type Pipeline[T any] struct {
	steps []Step[T]
}

// NewPipeline constructs a Pipeline from the provided steps. Steps are
// applied to each record in order.
func NewPipeline[T any](steps ...Step[T]) *Pipeline[T] {
	return &Pipeline[T]{steps: steps}
}

// Run applies every step to every record and returns the records that made it
// through all steps, preserving input order. Records are copied in, so the
// caller's slice is left untouched.
func (p *Pipeline[T]) Run(ctx context.Context, items []T) []T {
	var kept []T
	for i := range items {
		item := items[i]
		dropped := false
		for _, step := range p.steps {
			if err := step(ctx, &item); err != nil {
				log.Printf("Dropping record %d: %v", i, err)
				dropped = true
				break
			}
		}
		if !dropped {
			kept = append(kept, item)
		}
	}
	return kept
}
