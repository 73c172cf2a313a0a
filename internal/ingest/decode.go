package ingest

import (
	"context"
	"fmt"
	"os"

	"github.com/mannit-co/albayan/internal/engine"
	"github.com/mannit-co/albayan/internal/logging"
)

// DecodeCandidates decodes a candidate list payload.
func DecodeCandidates(ctx context.Context, data []byte) ([]engine.Candidate, error) {
	return decodeLogged(ctx, "candidates", data, toCandidate)
}

// DecodeTests decodes a test list payload.
func DecodeTests(ctx context.Context, data []byte) ([]engine.Test, error) {
	return decodeLogged(ctx, "tests", data, toTest)
}

// DecodeQuestions decodes a question list payload.
func DecodeQuestions(ctx context.Context, data []byte) ([]engine.Question, error) {
	return decodeLogged(ctx, "questions", data, toQuestion)
}

func decodeLogged[R any, T any](
	ctx context.Context, kind string, data []byte, convert func(R) (T, error),
) ([]T, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("operation", "decode_list").
		Str("kind", kind).
		Int("data_size_bytes", len(data)).
		Msg("decoding list payload")

	items, err := DecodeList(data, convert)
	if err != nil {
		log.Error().
			Ctx(ctx).
			Str("component", "ingest").
			Str("kind", kind).
			Err(err).
			Msg("failed to decode list payload")
		return nil, fmt.Errorf("decoding %s: %w", kind, err)
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("kind", kind).
		Int("item_count", len(items)).
		Msg("list payload decoded")
	return items, nil
}

// LoadFile reads path and decodes it with decode.
func LoadFile[T any](
	ctx context.Context, path string, decode func(context.Context, []byte) ([]T, error),
) ([]T, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("operation", "load_file").
		Str("file_path", path).
		Msg("loading list file")

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error().
			Ctx(ctx).
			Str("component", "ingest").
			Str("file_path", path).
			Err(err).
			Msg("failed to read list file")
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return decode(ctx, data)
}
