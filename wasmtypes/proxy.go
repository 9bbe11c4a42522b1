package wasmtypes

import "github.com/pkg/errors"

const (
	// separators for composite keys, they must differ so that a map key and an
	// array index under the same parent never produce the same key
	mapSeparator   byte = 0x2e
	arraySeparator byte = 0x23
)

// KvStore is the byte keyed storage a Proxy addresses. Get returns nil for an
// absent key. Implementations are not required to be safe for concurrent use.
type KvStore interface {
	Delete(key []byte) error
	Exists(key []byte) (bool, error)
	Get(key []byte) ([]byte, error)
	Set(key []byte, value []byte) error
}

// Proxy is an immutable handle to a composite key in a KvStore. Two proxies
// mutating the same store concurrently is undefined behavior, callers
// serialize access.
type Proxy struct {
	key   []byte
	store KvStore
}

func NewProxy(store KvStore) Proxy {
	return Proxy{store: store}
}

// Root returns the top level field name of the store.
func (p Proxy) Root(name string) Proxy {
	return Proxy{key: []byte(name), store: p.store}
}

// Key returns the map entry k below p.
func (p Proxy) Key(k []byte) Proxy {
	return p.sub(mapSeparator, k)
}

// Element returns the array element i below p without a bounds check.
func (p Proxy) Element(i uint32) Proxy {
	enc := NewWasmEncoder()
	enc.VluEncode(uint64(i))
	return p.sub(arraySeparator, enc.Buf())
}

// Index returns the existing array element i. Writing past the end goes
// through Append instead.
func (p Proxy) Index(i uint32) (Proxy, error) {
	length, err := p.Length()
	if err != nil {
		return Proxy{}, errors.Wrap(err, "index")
	}
	if i >= length {
		if i == length {
			return Proxy{}, ErrUseAppend
		}
		return Proxy{}, ErrInvalidIndex
	}
	return p.Element(i), nil
}

// Append grows the array by one and returns the new element.
func (p Proxy) Append() (Proxy, error) {
	length, err := p.Length()
	if err != nil {
		return Proxy{}, errors.Wrap(err, "append")
	}
	if length == ^uint32(0) {
		return Proxy{}, errors.Wrap(ErrIntegerOverflow, "append")
	}
	if err := p.setLength(length + 1); err != nil {
		return Proxy{}, errors.Wrap(err, "append")
	}
	return p.Element(length), nil
}

// Length returns the array length stored at the proxy key, zero when absent.
func (p Proxy) Length() (uint32, error) {
	buf, err := p.Get()
	if err != nil {
		return 0, errors.Wrap(err, "length")
	}
	if len(buf) == 0 {
		return 0, nil
	}
	dec := NewWasmDecoder(buf)
	length := uint32(dec.VluDecode(32))
	if err := dec.Close(); err != nil {
		return 0, errors.Wrap(err, "length")
	}
	return length, nil
}

// ClearArray deletes every element from last to first and then the length
// counter. Containers nested inside the elements are left in place.
func (p Proxy) ClearArray() error {
	length, err := p.Length()
	if err != nil {
		return errors.Wrap(err, "clear array")
	}
	for length != 0 {
		length--
		if err := p.Element(length).Delete(); err != nil {
			return errors.Wrap(err, "clear array")
		}
	}
	return errors.Wrap(p.Delete(), "clear array")
}

// ClearMap deletes the value at the map key itself. The store offers no key
// enumeration, so entries below the map are not removed.
func (p Proxy) ClearMap() error {
	return errors.Wrap(p.Delete(), "clear map")
}

func (p Proxy) Delete() error {
	return p.store.Delete(p.key)
}

func (p Proxy) Exists() (bool, error) {
	return p.store.Exists(p.key)
}

func (p Proxy) Get() ([]byte, error) {
	return p.store.Get(p.key)
}

// KeyBytes returns a copy of the composite key.
func (p Proxy) KeyBytes() []byte {
	return append([]byte{}, p.key...)
}

func (p Proxy) Set(value []byte) error {
	return p.store.Set(p.key, value)
}

func (p Proxy) Store() KvStore {
	return p.store
}

func (p Proxy) setLength(length uint32) error {
	enc := NewWasmEncoder()
	enc.VluEncode(uint64(length))
	return p.Set(enc.Buf())
}

func (p Proxy) sub(sep byte, key []byte) Proxy {
	buf := make([]byte, 0, len(p.key)+1+len(key))
	buf = append(buf, p.key...)
	buf = append(buf, sep)
	buf = append(buf, key...)
	return Proxy{key: buf, store: p.store}
}
