package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/10imaging/serving/session"
)

func testGeneric() *Generic {
	return &Generic{Bindings: map[string]TensorBinding{
		"query":  {TensorName: "embed/query:0", DType: session.DTypeString},
		"k":      {TensorName: "topk/k:0", DType: session.DTypeInt32},
		"scores": {TensorName: "topk/scores:0", DType: session.DTypeFloat},
		"ids":    {TensorName: "topk/ids:0", DType: session.DTypeInt64},
	}}
}

func TestBindInputs_PreservesCallerOrder(t *testing.T) {
	g := testGeneric()

	feeds, err := g.BindInputs([]Input{
		{Name: "k", Value: session.Value{DType: session.DTypeInt32, Data: int32(5)}},
		{Name: "query", Value: session.StringScalar("hello")},
	})
	require.NoError(t, err)

	require.Len(t, feeds, 2)
	assert.Equal(t, "topk/k:0", feeds[0].Name)
	assert.Equal(t, "embed/query:0", feeds[1].Name)
	assert.Equal(t, "hello", feeds[1].Value.Data)
}

func TestBindInputs_UnknownLogicalName(t *testing.T) {
	g := testGeneric()

	_, err := g.BindInputs([]Input{
		{Name: "missing", Value: session.StringScalar("x")},
	})
	assert.ErrorIs(t, err, ErrUnknownLogicalName)
}

func TestBindInputs_RejectsTypeMismatch(t *testing.T) {
	g := testGeneric()

	// k declares int32; a float value must not be coerced.
	_, err := g.BindInputs([]Input{
		{Name: "k", Value: session.FloatScalar(5)},
	})
	assert.ErrorIs(t, err, ErrValueTypeMismatch)
}

func TestBindOutputs_RoundTrip(t *testing.T) {
	g := testGeneric()

	tensors, err := g.BindOutputs([]string{"scores", "ids"})
	require.NoError(t, err)
	assert.Equal(t, []string{"topk/scores:0", "topk/ids:0"}, tensors)

	// Reversed caller order reverses the tensor order.
	tensors, err = g.BindOutputs([]string{"ids", "scores"})
	require.NoError(t, err)
	assert.Equal(t, []string{"topk/ids:0", "topk/scores:0"}, tensors)
}

func TestBindOutputs_UnknownLogicalName(t *testing.T) {
	g := testGeneric()

	_, err := g.BindOutputs([]string{"scores", "missing"})
	assert.ErrorIs(t, err, ErrUnknownLogicalName)
}
