// Package encoding negotiates between JSON and MessagePack bodies.
package encoding

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	ContentTypeMsgpack = "application/msgpack"
	ContentTypeJSON    = "application/json"
)

// MaxBodyBytes bounds every decoded request body.
const MaxBodyBytes = 1 << 20

func init() {
	// JavaScript msgpack encoders send Date values as extension type 0 with
	// the timestamp layout of extension -1.
	msgpack.RegisterExtDecoder(0, time.Time{}, func(dec *msgpack.Decoder, v reflect.Value, extLen int) error {
		data := make([]byte, extLen)
		if _, err := dec.Buffered().Read(data); err != nil {
			return err
		}
		t, err := decodeTimestamp(data)
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(t))
		return nil
	})
}

func decodeTimestamp(data []byte) (time.Time, error) {
	switch len(data) {
	case 4:
		return time.Unix(int64(binary.BigEndian.Uint32(data)), 0).UTC(), nil
	case 8:
		v := binary.BigEndian.Uint64(data)
		return time.Unix(int64(v&0x3ffffffff), int64(v>>34)).UTC(), nil
	case 12:
		nsec := int64(binary.BigEndian.Uint32(data[:4]))
		sec := int64(binary.BigEndian.Uint64(data[4:]))
		return time.Unix(sec, nsec).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp extension of %d bytes", len(data))
}

// NegotiateContentType picks msgpack only when the Accept header names it.
func NegotiateContentType(r *http.Request) string {
	if strings.Contains(r.Header.Get("Accept"), ContentTypeMsgpack) {
		return ContentTypeMsgpack
	}
	return ContentTypeJSON
}

// IsMsgpackBody reports whether the request body is MessagePack.
func IsMsgpackBody(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == ContentTypeMsgpack
}

// Write encodes data in the negotiated format.
func Write(w http.ResponseWriter, r *http.Request, status int, data any) error {
	if NegotiateContentType(r) == ContentTypeMsgpack {
		return WriteMsgpack(w, status, data)
	}
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// Read decodes the request body according to its Content-Type. JSON is the
// default.
func Read(w http.ResponseWriter, r *http.Request, target any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if IsMsgpackBody(r) {
		return ReadMsgpack(r, target)
	}
	return json.NewDecoder(r.Body).Decode(target)
}

func WriteMsgpack(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", ContentTypeMsgpack)
	w.WriteHeader(status)

	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	return enc.Encode(data)
}

func ReadMsgpack(r *http.Request, target any) error {
	dec := msgpack.NewDecoder(r.Body)
	dec.SetCustomStructTag("json")
	return dec.Decode(target)
}

// MarshalMsgpack encodes v with json field names.
func MarshalMsgpack(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func UnmarshalMsgpack(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}
