// Package client is the client-side boundary to the readtrack backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Login/SignUp, SearchTitle, LookupISBN, BookDetails, MyBooks, AddBook.
//  2. A JSON-over-HTTP implementation (see HTTPClient) that attaches the
//     caller's bearer token, stamps every request with an X-Request-ID and
//     maps failures to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens
//     the sqlite file holding the cached session and applies the embedded
//     goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx responses are returned
// as *APIError carrying the backend's message; they also match
// ErrUnauthorized, ErrNotFound or ErrUnavailable through errors.Is.
// A cancelled context is returned as the context's own error.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. It keeps no credentials between
// calls: the session token is passed to each authenticated method.
package client
