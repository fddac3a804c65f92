package codec

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"reflect"
)

// Gob serializes values with encoding/gob.
//
// gob does not transmit empty values: zero-length slices and maps decode as
// nil, so a round trip is only equal up to that collapse. A pointer to an
// interface is sent as an interface value; its concrete type is registered on
// encode, and a process decoding it must gob.Register the same type unless it
// is one of gob's predeclared types.
type Gob struct{}

func (Gob) Name() string { return "gob" }

func (Gob) Encode(w io.Writer, v any) error {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Interface {
		if rv.Elem().IsNil() {
			return errors.New("gob: cannot encode nil interface value")
		}
		if err := register(rv.Elem().Elem().Interface()); err != nil {
			return err
		}
	}
	return gob.NewEncoder(w).Encode(v)
}

func (Gob) Decode(r io.Reader, v any) error {
	return emptyStream(gob.NewDecoder(r).Decode(v))
}

// register recovers the panic gob.Register raises on name clashes.
func register(v any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gob: registering %T: %v", v, r)
		}
	}()
	gob.Register(v)
	return nil
}
