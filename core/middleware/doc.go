// Package middleware groups the HTTP middleware of the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting the sync endpoints.
//   - rayid: a unique request id (RayID) stored in the context and echoed in
//     the response headers for tracing.
//
// RayID is registered first so every later log line can carry it.
package middleware
