// Package ingest decodes list payloads from the assessment API, or from
// exported JSON files, into engine entities.
//
// The platform is not consistent about response shapes. A list may be a bare
// array or wrapped in an envelope ("data", "items", "results", "records", or
// a nested "data.items"/"data.results"). Records use either "_id" or "id" and
// mix camelCase with snake_case field names. Numbers sometimes arrive as
// strings. The decoders here absorb those differences so callers always get
// engine.Candidate, engine.Test and engine.Question values.
package ingest
