package wasmtypes

import "encoding/binary"

const (
	ScRequestIDLength = 34

	scTransactionIDLength = 32
	scMaxOutputIndex      = 127
)

// ScRequestID is a transaction id followed by the little-endian output index
// of the request inside that transaction.
type ScRequestID struct {
	id [ScRequestIDLength]byte
}

func NewScRequestID(txID ScHash, index uint16) (ScRequestID, error) {
	o := ScRequestID{}
	copy(o.id[:], txID.id[:])
	binary.LittleEndian.PutUint16(o.id[scTransactionIDLength:], index)
	if err := validateRequestID(o.id[:]); err != nil {
		return ScRequestID{}, err
	}
	return o, nil
}

func (o ScRequestID) Bytes() []byte {
	return RequestIDToBytes(o)
}

// Index returns the output index of the request.
func (o ScRequestID) Index() uint16 {
	return binary.LittleEndian.Uint16(o.id[scTransactionIDLength:])
}

func (o ScRequestID) String() string {
	return RequestIDToString(o)
}

// TransactionID returns the id of the transaction that carried the request.
func (o ScRequestID) TransactionID() ScHash {
	return HashFromRaw(o.id[:scTransactionIDLength])
}

func RequestIDDecode(dec *WasmDecoder) ScRequestID {
	buf := dec.FixedBytes(ScRequestIDLength)
	if dec.Err() != nil {
		return ScRequestID{}
	}
	if err := validateRequestID(buf); err != nil {
		dec.Fail(err)
		return ScRequestID{}
	}
	return requestIDFromRaw(buf)
}

func RequestIDEncode(enc *WasmEncoder, value ScRequestID) {
	enc.FixedBytes(value.id[:], ScRequestIDLength)
}

func RequestIDFromBytes(buf []byte) (ScRequestID, error) {
	if len(buf) == 0 {
		return ScRequestID{}, nil
	}
	if len(buf) != ScRequestIDLength {
		return ScRequestID{}, lengthError("RequestID")
	}
	if err := validateRequestID(buf); err != nil {
		return ScRequestID{}, err
	}
	return requestIDFromRaw(buf), nil
}

func RequestIDToBytes(value ScRequestID) []byte {
	return append([]byte{}, value.id[:]...)
}

func RequestIDFromString(value string) (ScRequestID, error) {
	buf, err := HexDecode(value)
	if err != nil {
		return ScRequestID{}, stringError("RequestID", err)
	}
	if len(buf) != ScRequestIDLength {
		return ScRequestID{}, stringError("RequestID", lengthError("RequestID"))
	}
	o, err := RequestIDFromBytes(buf)
	if err != nil {
		return ScRequestID{}, stringError("RequestID", err)
	}
	return o, nil
}

func RequestIDToString(value ScRequestID) string {
	return plainHex(value.id[:])
}

func requestIDFromRaw(buf []byte) ScRequestID {
	o := ScRequestID{}
	copy(o.id[:], buf)
	return o
}

// an output index never exceeds 127
func validateRequestID(buf []byte) error {
	if buf[ScRequestIDLength-2] > scMaxOutputIndex || buf[ScRequestIDLength-1] != 0 {
		return ErrInvalidRequestID
	}
	return nil
}
