// Package codec provides the binary serialization formats corpora are stored in.
package codec

import (
	"errors"
	"fmt"
	"io"

	"github.com/newthinker/corpus/internal/core"
)

// Codec encodes values to and decodes values from a byte stream.
type Codec interface {
	// Name returns the identifier used in configuration
	Name() string

	// Encode writes the serialized form of v to w. Callers pass a pointer
	// to the value so interface-typed values keep their static type.
	Encode(w io.Writer, v any) error

	// Decode reads one serialized value from r into v, which must be a pointer
	Decode(r io.Reader, v any) error
}

// Default is the codec used when none is configured.
var Default Codec = MsgPack{}

// ByName returns the codec registered under name.
func ByName(name string) (Codec, error) {
	switch name {
	case "":
		return Default, nil
	case "gob":
		return Gob{}, nil
	case "msgpack":
		return MsgPack{}, nil
	default:
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown codec %q (supported: gob, msgpack)", name))
	}
}

// Names lists the supported codec names.
func Names() []string {
	return []string{"gob", "msgpack"}
}

// emptyStream turns io.EOF on the first read into an explicit error; an
// empty stream holds no value.
func emptyStream(err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("empty stream: %w", io.ErrUnexpectedEOF)
	}
	return err
}
