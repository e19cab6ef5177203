// Package bookstore provides an HTTP client for the bookstore REST API.
//
// # Overview
//
// This package defines the API client the console uses to talk to the
// backend, which is the system of record for books, images, and orders. It
// handles HTTP communication, JSON and multipart serialization, bearer
// authentication, and type-safe representation of the wire schema.
//
// # Architecture
//
// The package is split into two files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Data structures mirroring the backend API schema
//
// # Client Usage
//
// Create a client using the base URL from configuration:
//
//	client, err := bookstore.NewClient("http://localhost:3001/api", 0)
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	sess, err := client.Login(ctx, username, password)
//	if err != nil {
//		// credentials rejected or server unreachable
//	}
//
//	books, err := client.FetchBooks(ctx)
//	images, err := client.FetchImages(ctx, isbn)
//
// # Sessions
//
// Login returns a *Session holding the bearer token. Every privileged call
// takes the session as an explicit argument and fails with
// ErrNotAuthenticated before issuing any request when the token is missing.
// Sessions exist only in memory for the lifetime of the console; logout is
// simply dropping the session.
//
// # Endpoints
//
//   - POST   /admin/login                      exchange credentials for a token
//   - GET    /books                            list books
//   - POST   /books                            create book (auth)
//   - PUT    /books/{isbn}                     update book (auth)
//   - DELETE /books/{isbn}                     delete book (auth)
//   - GET    /books/{isbn}/images              list images for a book
//   - POST   /books/{isbn}/images              upload image, multipart (auth)
//   - DELETE /books/{isbn}/images/{imageId}    delete image (auth)
//   - GET    /orders                           list orders with items
//   - PATCH  /orders/{orderId}/status          set order status (auth)
//
// Reads are public; mutations carry "Authorization: Bearer <token>".
//
// # Error Handling
//
// The client distinguishes between several error types:
//
//   - Client initialization errors: malformed base URL
//   - Local precondition errors: ErrNotAuthenticated, missing identifiers
//   - Network errors: connection refused, timeout, DNS failure
//   - HTTP errors: 4xx/5xx responses, decoded into *APIError with the
//     server-supplied detail preserved when the body carries one
//   - Deserialization errors: malformed JSON responses
//
// No call retries automatically. The caller decides whether and when to
// re-issue a failed request.
//
// # Design Rationale
//
// The client is intentionally minimal: no caching, no retries, no local
// mutation of fetched collections. Consumers re-fetch the affected
// collection after every successful mutation so displayed state always
// reflects the last known server response.
package bookstore
