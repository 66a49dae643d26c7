package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/lampara23/dise-o-web/internal/domain"
)

var (
	ErrBodyNotObject = errors.New("request body must be a JSON object")
	ErrTrailingData  = errors.New("request body must hold a single JSON object")
)

// DecodeFields reads a JSON object into a loosely typed field-set. Numbers
// become int64 when integral and float64 otherwise, so they are stored with
// a sensible numeric type. Anything after the object is rejected. No other
// validation happens.
func DecodeFields(r io.Reader) (domain.Fields, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		var syntaxErr *json.SyntaxError
		if err != nil && !errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("reading request body: %w", err)
		}
		return nil, ErrTrailingData
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrBodyNotObject
	}
	return domain.Fields(normalize(obj).(map[string]any)), nil
}

func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, child := range t {
			t[k] = normalize(child)
		}
		return t
	case []any:
		for i, child := range t {
			t[i] = normalize(child)
		}
		return t
	}
	return v
}
