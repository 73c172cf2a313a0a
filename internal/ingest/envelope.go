package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnrecognizedShape is returned when a payload is neither an array nor an
// envelope holding one.
var ErrUnrecognizedShape = errors.New("unrecognized list payload shape")

// envelopeKeys are probed in order on object payloads.
//
//nolint:gochecknoglobals // fixed lookup order
var envelopeKeys = []string{"data", "items", "results", "records", "candidates", "tests", "questions"}

// maxEnvelopeDepth bounds how far nested envelopes are unwrapped.
const maxEnvelopeDepth = 2

// ExtractList returns the raw elements of a list payload.
func ExtractList(data []byte) ([]json.RawMessage, error) {
	return extractList(bytes.TrimSpace(data), 0)
}

func extractList(data []byte, depth int) ([]json.RawMessage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrUnrecognizedShape)
	}

	switch data[0] {
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decoding list: %w", err)
		}
		return list, nil
	case '{':
		if depth >= maxEnvelopeDepth {
			return nil, fmt.Errorf("%w: envelope nested too deeply", ErrUnrecognizedShape)
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, fmt.Errorf("decoding envelope: %w", err)
		}
		for _, key := range envelopeKeys {
			inner, ok := obj[key]
			if !ok {
				continue
			}
			inner = bytes.TrimSpace(inner)
			if bytes.Equal(inner, []byte("null")) {
				return []json.RawMessage{}, nil
			}
			list, err := extractList(inner, depth+1)
			if errors.Is(err, ErrUnrecognizedShape) {
				continue
			}
			return list, err
		}
		return nil, fmt.Errorf("%w: object has none of %v", ErrUnrecognizedShape, envelopeKeys)
	case 'n':
		if bytes.Equal(data, []byte("null")) {
			return []json.RawMessage{}, nil
		}
	}
	return nil, fmt.Errorf("%w: expected array or object", ErrUnrecognizedShape)
}

// DecodeList extracts the elements of a list payload and converts each with
// convert. The index of a failing element is included in the error.
func DecodeList[R any, T any](data []byte, convert func(R) (T, error)) ([]T, error) {
	raws, err := ExtractList(data)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		var r R
		if unmarshalErr := json.Unmarshal(raw, &r); unmarshalErr != nil {
			return nil, fmt.Errorf("decoding element %d: %w", i, unmarshalErr)
		}
		v, convErr := convert(r)
		if convErr != nil {
			return nil, fmt.Errorf("element %d: %w", i, convErr)
		}
		out = append(out, v)
	}
	return out, nil
}
