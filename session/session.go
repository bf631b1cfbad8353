package session

import (
	"context"
	"fmt"
)

// DataType identifies the element type of a tensor value. The numeric
// codes are stable: they are what the meta graph codec writes to disk.
type DataType int32

const (
	DTypeInvalid DataType = iota
	DTypeString
	DTypeFloat
	DTypeDouble
	DTypeInt32
	DTypeInt64
	DTypeBool
)

// String returns the lowercase name of the data type.
func (d DataType) String() string {
	switch d {
	case DTypeString:
		return "string"
	case DTypeFloat:
		return "float"
	case DTypeDouble:
		return "double"
	case DTypeInt32:
		return "int32"
	case DTypeInt64:
		return "int64"
	case DTypeBool:
		return "bool"
	default:
		return fmt.Sprintf("invalid(%d)", int32(d))
	}
}

// Value is a typed tensor value exchanged with an execution engine.
// Shape is nil for scalars. Data holds the raw payload; its concrete Go
// type is engine-defined and never inspected by the loading layer.
type Value struct {
	DType DataType
	Shape []int
	Data  any
}

// StringScalar returns a scalar string value. The loader uses it to feed
// filenames (shard patterns, asset paths) into graph tensors.
func StringScalar(s string) Value {
	return Value{DType: DTypeString, Data: s}
}

// FloatScalar returns a scalar float value.
func FloatScalar(f float32) Value {
	return Value{DType: DTypeFloat, Data: f}
}

// Feed pairs a graph tensor name with the value to place in it. Feeds are
// ordered; engines receive them in the order the caller built them.
type Feed struct {
	Name  string
	Value Value
}

// Engine is the execution boundary for a loaded graph. An Engine runs the
// graph with the given feeds, returns one value per fetch (positionally
// aligned with fetches), and executes the named target operations for
// their side effects only.
//
// Run must be safe for concurrent use once the graph's variables have
// been restored and initialized.
type Engine interface {
	Run(ctx context.Context, feeds []Feed, fetches []string, targets []string) ([]Value, error)

	// Close releases all engine resources. No Run may be issued after Close.
	Close() error
}

// Config carries engine construction options. The loading layer passes it
// through untouched; only engine implementations interpret it.
type Config struct {
	// Target is the runtime endpoint to attach to. Empty means local
	// in-process execution.
	Target string

	// Options holds engine-specific tuning parameters.
	Options map[string]any
}

// Factory constructs an Engine from a serialized graph definition and an
// optional config. A nil cfg is equivalent to a zero Config.
type Factory func(graphDef []byte, cfg *Config) (Engine, error)
