package codec

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgPack serializes values as MessagePack, readable outside Go.
type MsgPack struct{}

func (MsgPack) Name() string { return "msgpack" }

func (MsgPack) Encode(w io.Writer, v any) error {
	return msgpack.NewEncoder(w).Encode(v)
}

func (MsgPack) Decode(r io.Reader, v any) error {
	return emptyStream(msgpack.NewDecoder(r).Decode(v))
}
