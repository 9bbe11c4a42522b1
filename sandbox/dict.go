package sandbox

import (
	"maps"
	"slices"

	"github.com/pkg/errors"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

const scDictMaxKeyLength = 0xffff

var (
	_ wasmtypes.KvStore = (*ScDict)(nil)
	_ wasmtypes.KvStore = (*ScImmutableDict)(nil)
)

// ScDict is an in-memory key/value store used to pass params and results
// across the host boundary. Its serialised form is a little endian u32 entry
// count followed by the entries in ascending key order, each as a u16 key
// length, the key, a u32 value length and the value.
type ScDict struct {
	dict map[string][]byte
}

func NewScDict() *ScDict {
	return &ScDict{dict: make(map[string][]byte)}
}

// NewScDictFromBytes decodes a serialised dict. An empty buffer yields an
// empty dict.
func NewScDictFromBytes(buf []byte) (*ScDict, error) {
	d := NewScDict()
	if len(buf) == 0 {
		return d, nil
	}

	dec := wasmtypes.NewWasmDecoder(buf)
	count, _ := wasmtypes.Uint32FromBytes(dec.FixedBytes(wasmtypes.ScUint32Length))
	for i := uint32(0); i < count && dec.Err() == nil; i++ {
		keyLen, _ := wasmtypes.Uint16FromBytes(
			dec.FixedBytes(wasmtypes.ScUint16Length),
		)
		key := dec.FixedBytes(uint32(keyLen))
		valueLen, _ := wasmtypes.Uint32FromBytes(
			dec.FixedBytes(wasmtypes.ScUint32Length),
		)
		value := dec.FixedBytes(valueLen)
		if dec.Err() != nil {
			break
		}
		if _, ok := d.dict[string(key)]; ok {
			dec.Fail(errors.Wrapf(ErrInvalidDict, "duplicate key %x", key))
			break
		}
		d.dict[string(key)] = value
	}
	if err := dec.Close(); err != nil {
		return nil, errors.Wrap(err, "dict from bytes")
	}
	return d, nil
}

// AsProxy returns a proxy rooted at the empty key of the dict.
func (d *ScDict) AsProxy() wasmtypes.Proxy {
	return wasmtypes.NewProxy(d)
}

func (d *ScDict) Bytes() []byte {
	enc := wasmtypes.NewWasmEncoder()
	if d == nil {
		enc.FixedBytes(wasmtypes.Uint32ToBytes(0), wasmtypes.ScUint32Length)
		return enc.Buf()
	}

	keys := d.Keys()
	enc.FixedBytes(
		wasmtypes.Uint32ToBytes(uint32(len(keys))),
		wasmtypes.ScUint32Length,
	)
	for _, key := range keys {
		value := d.dict[key]
		enc.FixedBytes(
			wasmtypes.Uint16ToBytes(uint16(len(key))),
			wasmtypes.ScUint16Length,
		)
		enc.FixedBytes([]byte(key), uint32(len(key)))
		enc.FixedBytes(
			wasmtypes.Uint32ToBytes(uint32(len(value))),
			wasmtypes.ScUint32Length,
		)
		enc.FixedBytes(value, uint32(len(value)))
	}
	return enc.Buf()
}

func (d *ScDict) Delete(key []byte) error {
	delete(d.dict, string(key))
	return nil
}

func (d *ScDict) Exists(key []byte) (bool, error) {
	_, ok := d.dict[string(key)]
	return ok, nil
}

// Get returns a copy of the value stored under key, nil when absent.
func (d *ScDict) Get(key []byte) ([]byte, error) {
	value, ok := d.dict[string(key)]
	if !ok {
		return nil, nil
	}
	return slices.Clone(value), nil
}

func (d *ScDict) Immutable() *ScImmutableDict {
	return &ScImmutableDict{dict: d}
}

// Keys returns the stored keys in ascending byte order.
func (d *ScDict) Keys() []string {
	if d == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(d.dict))
}

func (d *ScDict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.dict)
}

func (d *ScDict) Set(key []byte, value []byte) error {
	if len(key) > scDictMaxKeyLength {
		return errors.Wrapf(ErrKeyTooLong, "key of %d bytes", len(key))
	}
	if value == nil {
		value = []byte{}
	}
	d.dict[string(key)] = slices.Clone(value)
	return nil
}

// ScImmutableDict is a read-only view of an ScDict.
type ScImmutableDict struct {
	dict *ScDict
}

func (d *ScImmutableDict) AsProxy() wasmtypes.Proxy {
	return wasmtypes.NewProxy(d)
}

func (d *ScImmutableDict) Bytes() []byte {
	return d.dict.Bytes()
}

func (d *ScImmutableDict) Delete(key []byte) error {
	return errors.Wrap(ErrImmutableDict, "delete")
}

func (d *ScImmutableDict) Exists(key []byte) (bool, error) {
	return d.dict.Exists(key)
}

func (d *ScImmutableDict) Get(key []byte) ([]byte, error) {
	return d.dict.Get(key)
}

func (d *ScImmutableDict) Set(key []byte, value []byte) error {
	return errors.Wrap(ErrImmutableDict, "set")
}
