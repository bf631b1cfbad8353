package runner

import (
	"context"
	"fmt"

	"github.com/10imaging/serving/bundle"
	"github.com/10imaging/serving/session"
	"github.com/10imaging/serving/signature"
)

// Classification holds the outputs of one classification run. A field is
// nil when the signature does not declare the corresponding tensor.
type Classification struct {
	Classes *session.Value
	Scores  *session.Value
}

// Classify resolves the named (or default) classification signature and
// runs one inference, requesting exactly the outputs the signature
// declares.
func Classify(ctx context.Context, b *bundle.Bundle, name string, input session.Value) (*Classification, error) {
	sig, err := b.Signatures().ResolveClassification(name)
	if err != nil {
		return nil, err
	}

	var fetches []string
	if sig.Classes != "" {
		fetches = append(fetches, sig.Classes)
	}
	if sig.Scores != "" {
		fetches = append(fetches, sig.Scores)
	}
	// Construction-time validation already requires an output; guard
	// against a signature that bypassed it.
	if len(fetches) == 0 {
		return nil, signature.ErrNoOutputs
	}

	feeds := []session.Feed{{Name: sig.Input, Value: input}}

	outputs, err := b.Engine().Run(ctx, feeds, fetches, nil)
	if err != nil {
		return nil, fmt.Errorf("classification run failed: %w", err)
	}
	if len(outputs) != len(fetches) {
		return nil, fmt.Errorf("engine returned %d outputs for %d fetches", len(outputs), len(fetches))
	}

	result := &Classification{}
	i := 0
	if sig.Classes != "" {
		result.Classes = &outputs[i]
		i++
	}
	if sig.Scores != "" {
		result.Scores = &outputs[i]
	}

	return result, nil
}
