// Package client fetches candidates, tests and questions for albayan.
//
// Two Sources exist: Client talks to the assessment REST API, and FileSource
// reads exported JSON files from a directory. Both return engine entities
// decoded by package ingest. FetchAll loads all three collections
// concurrently, which the dashboard uses.
package client
