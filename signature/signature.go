// Package signature models the named input/output descriptions embedded in
// a meta graph, and resolves and binds them for inference.
package signature

import (
	"fmt"

	"github.com/10imaging/serving/session"
)

// Variant identifies which shape a Signature takes.
type Variant int

const (
	VariantUnknown Variant = iota
	VariantRegression
	VariantClassification
	VariantGeneric
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case VariantRegression:
		return "regression"
	case VariantClassification:
		return "classification"
	case VariantGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// Regression names the tensors of a single-input, single-output scoring
// signature.
type Regression struct {
	// Input is the graph tensor fed with the example to score.
	Input string

	// Output is the graph tensor holding the scores.
	Output string
}

// Classification names the tensors of a classification signature. Classes
// and Scores are tensor names; an empty string means the output is not
// declared. At least one of the two must be declared.
type Classification struct {
	Input   string
	Classes string
	Scores  string
}

// TensorBinding ties a logical name to a concrete graph tensor and the
// data type expected to flow through it.
type TensorBinding struct {
	TensorName string
	DType      session.DataType
}

// Generic maps caller-facing logical names to tensor bindings. Generic
// signatures carry no input/output distinction; callers decide which
// bindings to feed and which to fetch.
type Generic struct {
	Bindings map[string]TensorBinding
}

// Signature is a tagged union with exactly one variant set. The wrapping
// of optional pointers mirrors how the meta graph serializes the oneof.
type Signature struct {
	Regression     *Regression
	Classification *Classification
	Generic        *Generic
}

// Variant returns the active variant, or VariantUnknown when none is set.
func (s Signature) Variant() Variant {
	switch {
	case s.Regression != nil:
		return VariantRegression
	case s.Classification != nil:
		return VariantClassification
	case s.Generic != nil:
		return VariantGeneric
	default:
		return VariantUnknown
	}
}

// Validate checks that exactly one variant is set and that the variant's
// own invariants hold.
func (s Signature) Validate() error {
	set := 0
	if s.Regression != nil {
		set++
	}
	if s.Classification != nil {
		set++
	}
	if s.Generic != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("signature must have exactly one variant, has %d", set)
	}

	if c := s.Classification; c != nil && c.Classes == "" && c.Scores == "" {
		return fmt.Errorf("classification signature declares no outputs: %w", ErrNoOutputs)
	}

	return nil
}
