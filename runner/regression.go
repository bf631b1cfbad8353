// Package runner drives a loaded bundle's engine through the standard
// regression and classification signatures.
package runner

import (
	"context"
	"fmt"

	"github.com/10imaging/serving/bundle"
	"github.com/10imaging/serving/session"
)

// Regress resolves the named (or default, when name is empty) regression
// signature and runs one inference. The input lands in the signature's
// declared input tensor; the declared scores tensor is returned.
func Regress(ctx context.Context, b *bundle.Bundle, name string, input session.Value) (session.Value, error) {
	sig, err := b.Signatures().ResolveRegression(name)
	if err != nil {
		return session.Value{}, err
	}

	feeds := []session.Feed{{Name: sig.Input, Value: input}}

	outputs, err := b.Engine().Run(ctx, feeds, []string{sig.Output}, nil)
	if err != nil {
		return session.Value{}, fmt.Errorf("regression run failed: %w", err)
	}
	if len(outputs) != 1 {
		return session.Value{}, fmt.Errorf("engine returned %d outputs for 1 fetch", len(outputs))
	}

	return outputs[0], nil
}
