package client

import (
	"context"

	"github.com/mannit-co/albayan/internal/engine"
	"github.com/mannit-co/albayan/internal/ingest"
)

// API paths, relative to the base URL.
const (
	PathCandidates = "candidates"
	PathTests      = "tests"
	PathQuestions  = "questions"
	PathVersion    = "version"
)

// ListCandidates fetches every candidate.
func (c *Client) ListCandidates(ctx context.Context) ([]engine.Candidate, error) {
	body, err := c.get(ctx, PathCandidates)
	if err != nil {
		return nil, err
	}
	return ingest.DecodeCandidates(ctx, body)
}

// ListTests fetches every test.
func (c *Client) ListTests(ctx context.Context) ([]engine.Test, error) {
	body, err := c.get(ctx, PathTests)
	if err != nil {
		return nil, err
	}
	return ingest.DecodeTests(ctx, body)
}

// ListQuestions fetches the question bank.
func (c *Client) ListQuestions(ctx context.Context) ([]engine.Question, error) {
	body, err := c.get(ctx, PathQuestions)
	if err != nil {
		return nil, err
	}
	return ingest.DecodeQuestions(ctx, body)
}
