package wasmtypes

import "github.com/pkg/errors"

// Codec describes the flat state storage form of T.
type Codec[T any] struct {
	Name      string
	FromBytes func(buf []byte) (T, error)
	ToBytes   func(value T) []byte
	ToString  func(value T) string
}

var (
	AddressCodec   = Codec[ScAddress]{"Address", AddressFromBytes, AddressToBytes, AddressToString}
	AgentIDCodec   = Codec[ScAgentID]{"AgentID", AgentIDFromBytes, AgentIDToBytes, AgentIDToString}
	BigIntCodec    = Codec[ScBigInt]{"BigInt", BigIntFromBytes, BigIntToBytes, BigIntToString}
	BoolCodec      = Codec[bool]{"Bool", BoolFromBytes, BoolToBytes, BoolToString}
	BytesCodec     = Codec[[]byte]{"Bytes", BytesFromBytes, BytesToBytes, BytesToString}
	ChainIDCodec   = Codec[ScChainID]{"ChainID", ChainIDFromBytes, ChainIDToBytes, ChainIDToString}
	HashCodec      = Codec[ScHash]{"Hash", HashFromBytes, HashToBytes, HashToString}
	HnameCodec     = Codec[ScHname]{"Hname", HnameFromBytes, HnameToBytes, HnameToString}
	Int8Codec      = Codec[int8]{"Int8", Int8FromBytes, Int8ToBytes, Int8ToString}
	Int16Codec     = Codec[int16]{"Int16", Int16FromBytes, Int16ToBytes, Int16ToString}
	Int32Codec     = Codec[int32]{"Int32", Int32FromBytes, Int32ToBytes, Int32ToString}
	Int64Codec     = Codec[int64]{"Int64", Int64FromBytes, Int64ToBytes, Int64ToString}
	NftIDCodec     = Codec[ScNftID]{"NftID", NftIDFromBytes, NftIDToBytes, NftIDToString}
	RequestIDCodec = Codec[ScRequestID]{"RequestID", RequestIDFromBytes, RequestIDToBytes, RequestIDToString}
	StringCodec    = Codec[string]{"String", StringFromBytes, StringToBytes, StringToString}
	TokenIDCodec   = Codec[ScTokenID]{"TokenID", TokenIDFromBytes, TokenIDToBytes, TokenIDToString}
	Uint8Codec     = Codec[uint8]{"Uint8", Uint8FromBytes, Uint8ToBytes, Uint8ToString}
	Uint16Codec    = Codec[uint16]{"Uint16", Uint16FromBytes, Uint16ToBytes, Uint16ToString}
	Uint32Codec    = Codec[uint32]{"Uint32", Uint32FromBytes, Uint32ToBytes, Uint32ToString}
	Uint64Codec    = Codec[uint64]{"Uint64", Uint64FromBytes, Uint64ToBytes, Uint64ToString}
)

// ScImmutable is a read-only typed value stored at a proxy key.
type ScImmutable[T any] struct {
	proxy Proxy
	codec Codec[T]
}

func NewScImmutable[T any](proxy Proxy, codec Codec[T]) ScImmutable[T] {
	return ScImmutable[T]{proxy: proxy, codec: codec}
}

func (o ScImmutable[T]) Exists() (bool, error) {
	return o.proxy.Exists()
}

// String renders the stored value, an absent or unreadable value renders as
// the zero value.
func (o ScImmutable[T]) String() string {
	value, err := o.Value()
	if err != nil {
		var zero T
		return o.codec.ToString(zero)
	}
	return o.codec.ToString(value)
}

// Value returns the stored value, or the zero value when the key is absent.
func (o ScImmutable[T]) Value() (T, error) {
	buf, err := o.proxy.Get()
	if err != nil {
		var zero T
		return zero, errors.Wrap(err, "value")
	}
	value, err := o.codec.FromBytes(buf)
	return value, errors.Wrapf(err, "%s value", o.codec.Name)
}

// ScMutable is a typed value stored at a proxy key.
type ScMutable[T any] struct {
	ScImmutable[T]
}

func NewScMutable[T any](proxy Proxy, codec Codec[T]) ScMutable[T] {
	return ScMutable[T]{ScImmutable[T]{proxy: proxy, codec: codec}}
}

func (o ScMutable[T]) Delete() error {
	return o.proxy.Delete()
}

func (o ScMutable[T]) SetValue(value T) error {
	return o.proxy.Set(o.codec.ToBytes(value))
}

type ScImmutableArray[T any] struct {
	proxy Proxy
	codec Codec[T]
}

func NewScImmutableArray[T any](
	proxy Proxy,
	codec Codec[T],
) ScImmutableArray[T] {
	return ScImmutableArray[T]{proxy: proxy, codec: codec}
}

// Get returns element i, which must be below Length.
func (a ScImmutableArray[T]) Get(i uint32) (ScImmutable[T], error) {
	elem, err := a.proxy.Index(i)
	if err != nil {
		return ScImmutable[T]{}, err
	}
	return NewScImmutable(elem, a.codec), nil
}

func (a ScImmutableArray[T]) Length() (uint32, error) {
	return a.proxy.Length()
}

type ScMutableArray[T any] struct {
	proxy Proxy
	codec Codec[T]
}

func NewScMutableArray[T any](proxy Proxy, codec Codec[T]) ScMutableArray[T] {
	return ScMutableArray[T]{proxy: proxy, codec: codec}
}

// Append grows the array and returns the new, still empty, element.
func (a ScMutableArray[T]) Append() (ScMutable[T], error) {
	elem, err := a.proxy.Append()
	if err != nil {
		return ScMutable[T]{}, err
	}
	return NewScMutable(elem, a.codec), nil
}

// AppendValue grows the array by one element holding value.
func (a ScMutableArray[T]) AppendValue(value T) error {
	elem, err := a.Append()
	if err != nil {
		return err
	}
	return elem.SetValue(value)
}

func (a ScMutableArray[T]) Clear() error {
	return a.proxy.ClearArray()
}

func (a ScMutableArray[T]) Get(i uint32) (ScMutable[T], error) {
	elem, err := a.proxy.Index(i)
	if err != nil {
		return ScMutable[T]{}, err
	}
	return NewScMutable(elem, a.codec), nil
}

func (a ScMutableArray[T]) Immutable() ScImmutableArray[T] {
	return ScImmutableArray[T](a)
}

func (a ScMutableArray[T]) Length() (uint32, error) {
	return a.proxy.Length()
}

type ScImmutableMap[K any, V any] struct {
	proxy Proxy
	key   Codec[K]
	value Codec[V]
}

func NewScImmutableMap[K any, V any](
	proxy Proxy,
	key Codec[K],
	value Codec[V],
) ScImmutableMap[K, V] {
	return ScImmutableMap[K, V]{proxy: proxy, key: key, value: value}
}

func (m ScImmutableMap[K, V]) Get(key K) ScImmutable[V] {
	return NewScImmutable(m.proxy.Key(m.key.ToBytes(key)), m.value)
}

type ScMutableMap[K any, V any] struct {
	proxy Proxy
	key   Codec[K]
	value Codec[V]
}

func NewScMutableMap[K any, V any](
	proxy Proxy,
	key Codec[K],
	value Codec[V],
) ScMutableMap[K, V] {
	return ScMutableMap[K, V]{proxy: proxy, key: key, value: value}
}

// Clear has the same reach as Proxy.ClearMap, entries stay in the store.
func (m ScMutableMap[K, V]) Clear() error {
	return m.proxy.ClearMap()
}

func (m ScMutableMap[K, V]) Get(key K) ScMutable[V] {
	return NewScMutable(m.proxy.Key(m.key.ToBytes(key)), m.value)
}

func (m ScMutableMap[K, V]) Immutable() ScImmutableMap[K, V] {
	return ScImmutableMap[K, V](m)
}
