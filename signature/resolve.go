package signature

import "fmt"

// DefaultKey is the reserved name an export writer uses for the signature
// served when callers do not name one.
const DefaultKey = "default"

// Collection is the signature store embedded in a meta graph: a mapping
// from signature name to Signature.
type Collection map[string]Signature

// Resolve looks up a signature by name. An empty name resolves the
// reserved default key.
func (c Collection) Resolve(name string) (Signature, error) {
	if name == "" {
		s, ok := c[DefaultKey]
		if !ok {
			return Signature{}, ErrNoDefault
		}
		return s, nil
	}

	s, ok := c[name]
	if !ok {
		return Signature{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	return s, nil
}

// ResolveTyped resolves a signature and additionally requires its active
// variant to match want. A mismatch is a resolution failure, not a cast.
func (c Collection) ResolveTyped(name string, want Variant) (Signature, error) {
	s, err := c.Resolve(name)
	if err != nil {
		return Signature{}, err
	}

	if got := s.Variant(); got != want {
		return Signature{}, fmt.Errorf("%w: want %s, got %s", ErrTypeMismatch, want, got)
	}

	return s, nil
}

// ResolveRegression resolves a regression signature by name.
func (c Collection) ResolveRegression(name string) (*Regression, error) {
	s, err := c.ResolveTyped(name, VariantRegression)
	if err != nil {
		return nil, err
	}
	return s.Regression, nil
}

// ResolveClassification resolves a classification signature by name.
func (c Collection) ResolveClassification(name string) (*Classification, error) {
	s, err := c.ResolveTyped(name, VariantClassification)
	if err != nil {
		return nil, err
	}
	return s.Classification, nil
}

// ResolveGeneric resolves a generic signature by name.
func (c Collection) ResolveGeneric(name string) (*Generic, error) {
	s, err := c.ResolveTyped(name, VariantGeneric)
	if err != nil {
		return nil, err
	}
	return s.Generic, nil
}

// Names returns the declared signature names in map order.
func (c Collection) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	return names
}
