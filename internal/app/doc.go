// Package app provides the orchestration layer for the Backroom console.
//
// It is the composition root: Run loads configuration and user preferences,
// builds the API client and the shared state store, and hands everything to
// the UI, which blocks until exit.
//
// There is no background synchronization. Data is fetched when the operator
// signs in, asks for a refresh, or completes a mutation; every mutation is
// followed by a re-fetch so the console always shows the server's copy.
//
// Fatal errors (bad config file, unparseable API URL) are returned from Run.
// Everything after startup is recoverable: fetch failures surface in the UI
// and the previously loaded data stays visible.
package app
