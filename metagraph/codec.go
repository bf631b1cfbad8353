package metagraph

import (
	"fmt"
	"os"
	"sort"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/10imaging/serving/session"
	"github.com/10imaging/serving/signature"
)

// The artifact is a protobuf wire-format message, encoded and decoded
// directly with protowire. Field numbers are part of the on-disk format
// and must never be reused.
//
//	MetaGraph:
//	  1 graph_def        bytes
//	  2 signatures       repeated Entry{1 name, 2 Signature}
//	  3 init_op          string
//	  4 assets           repeated AssetBinding{1 tensor_name, 2 filename}
//	  5 restore_op       string
//	  6 shard_pattern    string
//	Signature (oneof):
//	  1 regression       Regression{1 input, 2 output}
//	  2 classification   Classification{1 input, 2 classes, 3 scores}
//	  3 generic          Generic{1 repeated Entry{1 name, 2 TensorBinding}}
//	TensorBinding:
//	  1 tensor_name      string
//	  2 dtype            varint
const (
	fieldGraphDef     = 1
	fieldSignatures   = 2
	fieldInitOp       = 3
	fieldAssets       = 4
	fieldRestoreOp    = 5
	fieldShardPattern = 6

	sigFieldRegression     = 1
	sigFieldClassification = 2
	sigFieldGeneric        = 3
)

// Marshal serializes the meta graph. Signatures are validated first so a
// malformed one can never round-trip through an export.
func Marshal(m *MetaGraph) ([]byte, error) {
	for _, name := range sortedNames(m.Signatures) {
		if err := m.Signatures[name].Validate(); err != nil {
			return nil, fmt.Errorf("signature %q: %w", name, err)
		}
	}

	var b []byte
	b = appendBytesField(b, fieldGraphDef, m.GraphDef)

	for _, name := range sortedNames(m.Signatures) {
		entry := appendStringField(nil, 1, name)
		entry = appendMessageField(entry, 2, marshalSignature(m.Signatures[name]))
		b = appendMessageField(b, fieldSignatures, entry)
	}

	b = appendStringField(b, fieldInitOp, m.InitOp)

	for _, a := range m.Assets {
		entry := appendStringField(nil, 1, a.TensorName)
		entry = appendStringField(entry, 2, a.Filename)
		b = appendMessageField(b, fieldAssets, entry)
	}

	b = appendStringField(b, fieldRestoreOp, m.RestoreOp)
	b = appendStringField(b, fieldShardPattern, m.ShardPatternTensor)

	return b, nil
}

// Unmarshal deserializes a meta graph artifact. Any wire-level damage or
// invalid embedded signature reports ErrCorrupt.
func Unmarshal(data []byte) (*MetaGraph, error) {
	m := &MetaGraph{Signatures: signature.Collection{}}

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, corrupt(protowire.ParseError(n))
		}
		data = data[n:]

		if typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, corrupt(protowire.ParseError(n))
			}
			data = data[n:]
			continue
		}

		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return nil, corrupt(protowire.ParseError(n))
		}
		data = data[n:]

		switch num {
		case fieldGraphDef:
			m.GraphDef = append([]byte(nil), v...)
		case fieldSignatures:
			name, sig, err := unmarshalSignatureEntry(v)
			if err != nil {
				return nil, err
			}
			m.Signatures[name] = sig
		case fieldInitOp:
			m.InitOp = string(v)
		case fieldAssets:
			binding, err := unmarshalAssetBinding(v)
			if err != nil {
				return nil, err
			}
			m.Assets = append(m.Assets, binding)
		case fieldRestoreOp:
			m.RestoreOp = string(v)
		case fieldShardPattern:
			m.ShardPatternTensor = string(v)
		}
	}

	for name, s := range m.Signatures {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("%w: signature %q: %v", ErrCorrupt, name, err)
		}
	}

	return m, nil
}

// ReadFile reads and deserializes the artifact at path.
func ReadFile(path string) (*MetaGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Unmarshal(data)
}

// WriteFile serializes the meta graph to path. Export writers and test
// fixtures use it; the loader never writes.
func WriteFile(path string, m *MetaGraph) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

func marshalSignature(s signature.Signature) []byte {
	switch {
	case s.Regression != nil:
		msg := appendStringField(nil, 1, s.Regression.Input)
		msg = appendStringField(msg, 2, s.Regression.Output)
		return appendMessageField(nil, sigFieldRegression, msg)

	case s.Classification != nil:
		msg := appendStringField(nil, 1, s.Classification.Input)
		msg = appendStringField(msg, 2, s.Classification.Classes)
		msg = appendStringField(msg, 3, s.Classification.Scores)
		return appendMessageField(nil, sigFieldClassification, msg)

	case s.Generic != nil:
		var msg []byte
		names := make([]string, 0, len(s.Generic.Bindings))
		for name := range s.Generic.Bindings {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			binding := s.Generic.Bindings[name]
			tb := appendStringField(nil, 1, binding.TensorName)
			if binding.DType != 0 {
				tb = protowire.AppendTag(tb, 2, protowire.VarintType)
				tb = protowire.AppendVarint(tb, uint64(binding.DType))
			}

			entry := appendStringField(nil, 1, name)
			entry = appendMessageField(entry, 2, tb)
			msg = appendMessageField(msg, 1, entry)
		}
		return appendMessageField(nil, sigFieldGeneric, msg)
	}

	return nil
}

func unmarshalSignatureEntry(data []byte) (string, signature.Signature, error) {
	var name string
	var sig signature.Signature

	err := eachBytesField(data, func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			name = string(v)
		case 2:
			var err error
			sig, err = unmarshalSignature(v)
			return err
		}
		return nil
	})

	return name, sig, err
}

func unmarshalSignature(data []byte) (signature.Signature, error) {
	var s signature.Signature

	err := eachBytesField(data, func(num protowire.Number, v []byte) error {
		// Oneof semantics: the last variant on the wire wins.
		switch num {
		case sigFieldRegression:
			r := &signature.Regression{}
			if err := eachBytesField(v, func(n protowire.Number, fv []byte) error {
				switch n {
				case 1:
					r.Input = string(fv)
				case 2:
					r.Output = string(fv)
				}
				return nil
			}); err != nil {
				return err
			}
			s = signature.Signature{Regression: r}

		case sigFieldClassification:
			c := &signature.Classification{}
			if err := eachBytesField(v, func(n protowire.Number, fv []byte) error {
				switch n {
				case 1:
					c.Input = string(fv)
				case 2:
					c.Classes = string(fv)
				case 3:
					c.Scores = string(fv)
				}
				return nil
			}); err != nil {
				return err
			}
			s = signature.Signature{Classification: c}

		case sigFieldGeneric:
			g := &signature.Generic{Bindings: map[string]signature.TensorBinding{}}
			if err := eachBytesField(v, func(n protowire.Number, fv []byte) error {
				if n != 1 {
					return nil
				}
				name, binding, err := unmarshalTensorBindingEntry(fv)
				if err != nil {
					return err
				}
				g.Bindings[name] = binding
				return nil
			}); err != nil {
				return err
			}
			s = signature.Signature{Generic: g}
		}
		return nil
	})

	return s, err
}

func unmarshalTensorBindingEntry(data []byte) (string, signature.TensorBinding, error) {
	var name string
	var binding signature.TensorBinding

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return "", binding, corrupt(protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return "", binding, corrupt(protowire.ParseError(n))
			}
			name = string(v)
			data = data[n:]

		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return "", binding, corrupt(protowire.ParseError(n))
			}
			data = data[n:]

			if err := decodeTensorBinding(v, &binding); err != nil {
				return "", binding, err
			}

		default:
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return "", binding, corrupt(protowire.ParseError(n))
			}
			data = data[n:]
		}
	}

	return name, binding, nil
}

func decodeTensorBinding(data []byte, binding *signature.TensorBinding) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return corrupt(protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return corrupt(protowire.ParseError(n))
			}
			binding.TensorName = string(v)
			data = data[n:]

		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return corrupt(protowire.ParseError(n))
			}
			binding.DType = session.DataType(v)
			data = data[n:]

		default:
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return corrupt(protowire.ParseError(n))
			}
			data = data[n:]
		}
	}

	return nil
}

func unmarshalAssetBinding(data []byte) (AssetBinding, error) {
	var binding AssetBinding

	err := eachBytesField(data, func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			binding.TensorName = string(v)
		case 2:
			binding.Filename = string(v)
		}
		return nil
	})

	return binding, err
}

// eachBytesField walks a message and invokes fn for every length-delimited
// field, skipping fields of other wire types.
func eachBytesField(data []byte, fn func(num protowire.Number, v []byte) error) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return corrupt(protowire.ParseError(n))
		}
		data = data[n:]

		if typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return corrupt(protowire.ParseError(n))
			}
			data = data[n:]
			continue
		}

		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return corrupt(protowire.ParseError(n))
		}
		data = data[n:]

		if err := fn(num, v); err != nil {
			return err
		}
	}

	return nil
}

func appendStringField(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendMessageField(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func sortedNames(c signature.Collection) []string {
	names := c.Names()
	sort.Strings(names)
	return names
}

func corrupt(err error) error {
	return fmt.Errorf("%w: %v", ErrCorrupt, err)
}
