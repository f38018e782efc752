// Package stormcodec gathers the encodings the database file can be written with.
package stormcodec

import (
	"bytes"

	"github.com/asdine/storm/v3/codec"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/pkg/errors"
	ucodec "github.com/ugorji/go/codec"
)

var (
	// MsgPack is the default codec.
	MsgPack codec.MarshalUnmarshaler = msgpack.Codec
	// CBOR encodes to and decodes from CBOR (Concise Binary Object Representation).
	// http://cbor.io/
	CBOR codec.MarshalUnmarshaler = &ugorji{name: "cbor", handle: cborHandle()}
	// Binc encodes to and decodes from Binc.
	// See https://github.com/ugorji/binc
	Binc codec.MarshalUnmarshaler = &ugorji{name: "binc", handle: bincHandle()}
)

// Records carry their storage field names in msgpack tags; json tags are the API render
// and hide some stored fields.
var typeInfos = ucodec.NewTypeInfos([]string{"msgpack"})

func cborHandle() *ucodec.CborHandle {
	h := &ucodec.CborHandle{}
	h.TypeInfos = typeInfos
	return h
}

func bincHandle() *ucodec.BincHandle {
	h := &ucodec.BincHandle{}
	h.TypeInfos = typeInfos
	return h
}

// ByName returns the codec registered under the given name.
// An empty name selects MsgPack.
func ByName(name string) (codec.MarshalUnmarshaler, error) {
	switch name {
	case "", "msgpack":
		return MsgPack, nil
	case "cbor":
		return CBOR, nil
	case "binc":
		return Binc, nil
	default:
		return nil, errors.Errorf("unknown storm codec: %s", name)
	}
}

type ugorji struct {
	name   string
	handle ucodec.Handle
}

func (c *ugorji) Marshal(v any) ([]byte, error) {
	var b bytes.Buffer
	enc := ucodec.NewEncoder(&b, c.handle)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (c *ugorji) Unmarshal(b []byte, v any) error {
	dec := ucodec.NewDecoder(bytes.NewReader(b), c.handle)
	return dec.Decode(v)
}

func (c *ugorji) Name() string {
	return c.name
}
