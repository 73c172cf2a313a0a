package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/mannit-co/albayan/internal/engine"
	"github.com/mannit-co/albayan/internal/ingest"
	"github.com/mannit-co/albayan/internal/logging"
)

// Source lists the three collections.
type Source interface {
	ListCandidates(ctx context.Context) ([]engine.Candidate, error)
	ListTests(ctx context.Context) ([]engine.Test, error)
	ListQuestions(ctx context.Context) ([]engine.Question, error)
}

// Export file names read by FileSource.
const (
	CandidatesFile = "candidates.json"
	TestsFile      = "tests.json"
	QuestionsFile  = "questions.json"
)

// ErrSourceNotDirectory is returned by NewFileSource for non-directories.
var ErrSourceNotDirectory = errors.New("source is not a directory")

// FileSource reads exported JSON payloads from a directory.
type FileSource struct {
	dir string
}

// NewFileSource creates a FileSource over dir.
func NewFileSource(dir string) (*FileSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening source %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotDirectory, dir)
	}
	return &FileSource{dir: dir}, nil
}

// Dir returns the source directory.
func (s *FileSource) Dir() string {
	return s.dir
}

// ListCandidates reads candidates.json.
func (s *FileSource) ListCandidates(ctx context.Context) ([]engine.Candidate, error) {
	return ingest.LoadFile(ctx, filepath.Join(s.dir, CandidatesFile), ingest.DecodeCandidates)
}

// ListTests reads tests.json.
func (s *FileSource) ListTests(ctx context.Context) ([]engine.Test, error) {
	return ingest.LoadFile(ctx, filepath.Join(s.dir, TestsFile), ingest.DecodeTests)
}

// ListQuestions reads questions.json.
func (s *FileSource) ListQuestions(ctx context.Context) ([]engine.Question, error) {
	return ingest.LoadFile(ctx, filepath.Join(s.dir, QuestionsFile), ingest.DecodeQuestions)
}

// Collections is the result of FetchAll.
type Collections struct {
	Candidates []engine.Candidate
	Tests      []engine.Test
	Questions  []engine.Question
}

// FetchAll lists all three collections concurrently. The first failure
// cancels the others and is returned.
func FetchAll(ctx context.Context, src Source) (Collections, error) {
	log := logging.FromContext(ctx)
	var out Collections

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := src.ListCandidates(gCtx)
		if err != nil {
			return fmt.Errorf("listing candidates: %w", err)
		}
		out.Candidates = items
		return nil
	})
	g.Go(func() error {
		items, err := src.ListTests(gCtx)
		if err != nil {
			return fmt.Errorf("listing tests: %w", err)
		}
		out.Tests = items
		return nil
	})
	g.Go(func() error {
		items, err := src.ListQuestions(gCtx)
		if err != nil {
			return fmt.Errorf("listing questions: %w", err)
		}
		out.Questions = items
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().
			Ctx(ctx).
			Str("component", "client").
			Err(err).
			Msg("failed to fetch collections")
		return Collections{}, err
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "client").
		Int("candidates", len(out.Candidates)).
		Int("tests", len(out.Tests)).
		Int("questions", len(out.Questions)).
		Msg("collections fetched")
	return out, nil
}
