package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCollection() Collection {
	return Collection{
		DefaultKey: {Regression: &Regression{Input: "in:0", Output: "out:0"}},
		"classify": {Classification: &Classification{Input: "in:0", Scores: "scores:0"}},
		"lookup": {Generic: &Generic{Bindings: map[string]TensorBinding{
			"query": {TensorName: "query:0", DType: 1},
		}}},
	}
}

func TestResolve_ByName(t *testing.T) {
	c := testCollection()

	s, err := c.Resolve("classify")
	require.NoError(t, err)
	assert.Equal(t, VariantClassification, s.Variant())
}

func TestResolve_EmptyNameUsesDefault(t *testing.T) {
	c := testCollection()

	s, err := c.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, VariantRegression, s.Variant())
}

func TestResolve_MissingName(t *testing.T) {
	c := testCollection()

	_, err := c.Resolve("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_NoDefaultDeclared(t *testing.T) {
	c := Collection{
		"only": {Regression: &Regression{Input: "in:0", Output: "out:0"}},
	}

	_, err := c.Resolve("")
	assert.ErrorIs(t, err, ErrNoDefault)
}

func TestResolveTyped_VariantMismatch(t *testing.T) {
	c := testCollection()

	// A generic signature never satisfies a typed request.
	_, err := c.ResolveTyped("lookup", VariantRegression)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = c.ResolveRegression("classify")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestResolveTyped_Match(t *testing.T) {
	c := testCollection()

	r, err := c.ResolveRegression("")
	require.NoError(t, err)
	assert.Equal(t, "in:0", r.Input)
	assert.Equal(t, "out:0", r.Output)

	cl, err := c.ResolveClassification("classify")
	require.NoError(t, err)
	assert.Equal(t, "scores:0", cl.Scores)
	assert.Empty(t, cl.Classes)

	g, err := c.ResolveGeneric("lookup")
	require.NoError(t, err)
	assert.Contains(t, g.Bindings, "query")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Signature{Regression: &Regression{Input: "a", Output: "b"}}.Validate())

	// No variant at all.
	assert.Error(t, Signature{}.Validate())

	// Two variants at once.
	assert.Error(t, Signature{
		Regression: &Regression{},
		Generic:    &Generic{},
	}.Validate())

	// Classification must declare at least one output.
	err := Signature{Classification: &Classification{Input: "in:0"}}.Validate()
	assert.ErrorIs(t, err, ErrNoOutputs)
}
