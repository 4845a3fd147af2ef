package skema

import (
	"io"

	spb "google.golang.org/protobuf/types/known/structpb"

	cborsrc "github.com/reoring/skema/source/cbor"
	jsonsrc "github.com/reoring/skema/source/json"
	pbsrc "github.com/reoring/skema/source/structpb"
	yamlsrc "github.com/reoring/skema/source/yaml"
	"github.com/reoring/skema/value"

	eng "github.com/reoring/skema/internal/engine"
)

// Source abstracts over polymorphic input. Decode turns the whole input into
// a value tree, applying the enforcement options of the call.
type Source interface {
	Decode(opt ParseOpt) (value.Value, error)
	// Format names the encoding for diagnostics ("json", "yaml", ...).
	Format() string
}

type sourceFunc struct {
	format string
	decode func(eng.EnforceOptions) (value.Value, error)
}

func (s sourceFunc) Decode(opt ParseOpt) (value.Value, error) { return s.decode(opt.enforce()) }
func (s sourceFunc) Format() string                           { return s.format }

// JSONBytes wraps a byte slice as a JSON Source. It may be decoded any
// number of times.
func JSONBytes(b []byte) Source {
	return sourceFunc{format: "json", decode: func(opt eng.EnforceOptions) (value.Value, error) {
		return jsonsrc.DecodeBytes(b, opt)
	}}
}

// JSONReader wraps an io.Reader as a JSON Source. At most MaxBytes+1 bytes
// are read; tokens then stream through the duplicate-key and depth checks
// of ParseOpt. The reader is consumed by the first decode.
func JSONReader(r io.Reader) Source {
	return sourceFunc{format: "json", decode: func(opt eng.EnforceOptions) (value.Value, error) {
		return jsonsrc.Decode(r, opt)
	}}
}

// YAMLBytes wraps a single YAML document.
func YAMLBytes(b []byte) Source {
	return sourceFunc{format: "yaml", decode: func(opt eng.EnforceOptions) (value.Value, error) {
		return yamlsrc.Decode(b, opt)
	}}
}

// CBORBytes wraps a single CBOR data item.
func CBORBytes(b []byte) Source {
	return sourceFunc{format: "cbor", decode: func(opt eng.EnforceOptions) (value.Value, error) {
		return cborsrc.Decode(b, opt)
	}}
}

// StructPB wraps a protobuf Value message.
func StructPB(v *spb.Value) Source {
	return sourceFunc{format: "structpb", decode: func(opt eng.EnforceOptions) (value.Value, error) {
		return pbsrc.Decode(v, opt)
	}}
}

// ValueSource wraps an already decoded value tree.
func ValueSource(v value.Value) Source {
	return sourceFunc{format: "value", decode: func(eng.EnforceOptions) (value.Value, error) { return v, nil }}
}
