package jsonlib

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Flatten carries a typed record plus whatever other keys arrived with it,
// and writes both back out as a single JSON object. Defined must encode to a
// JSON object. On a key clash the Defined value is kept.
type Flatten[T any] struct {
	Defined T
	Extra   map[string]any
}

func (f Flatten[T]) MarshalJSON() ([]byte, error) {
	merged, err := f.ToMap()
	if err != nil {
		return nil, err
	}

	return json.Marshal(merged)
}

func (f *Flatten[T]) UnmarshalJSON(b []byte) error {
	var defined T
	if err := json.Unmarshal(b, &defined); err != nil {
		return errors.Wrap(err, "JSON body does not fit the defined fields")
	}

	raw := map[string]any{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return errors.Wrap(err, "JSON body is not an object")
	}

	definedKeys, err := StructToMap(defined)
	if err != nil {
		return errors.Wrap(err, "Failed to list the defined keys")
	}

	for key := range definedKeys {
		delete(raw, key)
	}

	f.Defined = defined
	f.Extra = raw
	return nil
}

// ToMap merges Defined over Extra into one map
func (f Flatten[T]) ToMap() (map[string]any, error) {
	definedMap, err := StructToMap(f.Defined)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to convert the defined fields")
	}

	merged := make(map[string]any, len(f.Extra)+len(definedMap))
	for key, value := range f.Extra {
		merged[key] = value
	}
	for key, value := range definedMap {
		merged[key] = value
	}

	return merged, nil
}

func (f *Flatten[T]) FromMap(m map[string]any) error {
	b, err := json.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "Failed to encode map")
	}

	return f.UnmarshalJSON(b)
}

// DropExtra removes keys from Extra, for names that are reserved by the
// storage layer and must never round trip through clients
func (f *Flatten[T]) DropExtra(keys ...string) {
	for _, key := range keys {
		delete(f.Extra, key)
	}
}

func StructToMap(s any) (map[string]any, error) {
	return convert[map[string]any](s)
}

func MapToStruct[T any](m map[string]any) (T, error) {
	return convert[T](m)
}

// convert moves a value between two shapes through its JSON encoding
func convert[Out any](in any) (Out, error) {
	var out Out

	b, err := json.Marshal(in)
	if err != nil {
		return out, errors.Wrapf(err, "Failed to encode %T", in)
	}

	if err := json.Unmarshal(b, &out); err != nil {
		return out, errors.Wrapf(err, "Failed to decode into %T", out)
	}

	return out, nil
}
