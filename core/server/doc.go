// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines
// the configuration structure for the status API: listen port, API key and
// the graceful shutdown budget.
package server
