package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Key is a slash-separated document path such as
// "lessons/public/lessonsList/control-flow/itemsList/beeperLine".
type Key string

// Path joins segments into a Key. Empty segments are kept so a missing id
// produces a key that cannot exist rather than addressing a parent.
func Path(segments ...string) Key {
	return Key(strings.Join(segments, "/"))
}

// Collection is the first path segment.
func (k Key) Collection() string {
	s := string(k)
	if i := strings.IndexByte(s, '/'); i >= 0 {
		return s[:i]
	}
	return s
}

func (k Key) String() string { return string(k) }

var ErrInvalidRecord = errors.New("docstore: record is not a JSON object")

// Record is a stored document with its top-level fields left encoded.
type Record map[string]json.RawMessage

// DecodeRecord parses a JSON object body.
func DecodeRecord(body []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if rec == nil {
		return nil, ErrInvalidRecord
	}
	return rec, nil
}

// NewRecord encodes each field of v into a Record.
func NewRecord(v map[string]any) (Record, error) {
	rec := make(Record, len(v))
	for k, val := range v {
		b, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("encode field %q: %w", k, err)
		}
		rec[k] = b
	}
	return rec, nil
}

func (r Record) Encode() ([]byte, error) {
	if r == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]json.RawMessage(r))
}

// Raw returns the encoded field, or nil when absent or null.
func (r Record) Raw(field string) json.RawMessage {
	raw, ok := r[field]
	if !ok || strings.TrimSpace(string(raw)) == "null" {
		return nil
	}
	return raw
}

// String returns the field when it is a JSON string.
func (r Record) String(field string) (string, bool) {
	raw := r.Raw(field)
	if raw == nil {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Truthy reports whether the field holds a value other than false, 0, "" or null.
func (r Record) Truthy(field string) bool {
	raw := r.Raw(field)
	if raw == nil {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}

// Decode unmarshals one field into out. Absent fields leave out untouched.
func (r Record) Decode(field string, out any) (bool, error) {
	raw := r.Raw(field)
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("decode field %q: %w", field, err)
	}
	return true, nil
}

// Store is a point-read document store. A missing document is reported as
// found=false with a nil error; errors mean the store itself failed.
type Store interface {
	Get(ctx context.Context, key Key) (Record, bool, error)
	Put(ctx context.Context, key Key, rec Record) error
	Close() error
}
