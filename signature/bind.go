package signature

import (
	"fmt"

	"github.com/10imaging/serving/session"
)

// Input pairs a logical name with the value the caller wants placed in
// the tensor bound to that name.
type Input struct {
	Name  string
	Value session.Value
}

// BindInputs translates logical inputs into engine feeds, preserving the
// caller-supplied order. The value's data type must match the binding's
// declared type exactly; no coercion is performed.
func (g *Generic) BindInputs(inputs []Input) ([]session.Feed, error) {
	feeds := make([]session.Feed, 0, len(inputs))
	for _, in := range inputs {
		binding, ok := g.Bindings[in.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLogicalName, in.Name)
		}

		if in.Value.DType != binding.DType {
			return nil, fmt.Errorf("%w: %q declares %s, value is %s",
				ErrValueTypeMismatch, in.Name, binding.DType, in.Value.DType)
		}

		feeds = append(feeds, session.Feed{Name: binding.TensorName, Value: in.Value})
	}

	return feeds, nil
}

// BindOutputs translates logical names into the tensor names to fetch,
// preserving the caller-supplied order. Order matters: engine results are
// positionally paired with it.
func (g *Generic) BindOutputs(names []string) ([]string, error) {
	tensors := make([]string, 0, len(names))
	for _, name := range names {
		binding, ok := g.Bindings[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLogicalName, name)
		}
		tensors = append(tensors, binding.TensorName)
	}

	return tensors, nil
}
