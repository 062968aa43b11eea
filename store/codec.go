package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Normalize converts json.Number values to int64 when integral, else
// float64, recursing into objects and arrays. Documents reach the store in
// this form and every local backend decodes back into it.
func Normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = Normalize(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = Normalize(e)
		}
		return t
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	default:
		return v
	}
}

// decodeJSON decodes b into v keeping numbers exact.
func decodeJSON(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

// decodeDocument decodes a stored JSON document.
func decodeDocument(b []byte) (map[string]any, error) {
	var doc map[string]any
	if err := decodeJSON(b, &doc); err != nil {
		return nil, err
	}
	Normalize(doc)
	return doc, nil
}

// decodeCollection decodes an id -> document JSON object.
func decodeCollection(b []byte) (map[string]map[string]any, error) {
	var raw map[string]map[string]any
	if err := decodeJSON(b, &raw); err != nil {
		return nil, err
	}
	for id, doc := range raw {
		if doc == nil {
			return nil, fmt.Errorf("document %s is not an object", id)
		}
		Normalize(doc)
	}
	if raw == nil {
		raw = map[string]map[string]any{}
	}
	return raw, nil
}
