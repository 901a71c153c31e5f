// Package datahub is the HTTP client of the personnel record source.
//
// Filters are sent as query parameters in the source's own syntax, e.g.
// department.functionCode=060 or
// jobCodeLastUpdated=greaterOrEqual::2024-01-01T00:00:00Z. Responses are
// envelopes of the form {"recordCount": n, "employees": [...]}.
//
// Network errors, 429 and 5xx responses are retried with exponential
// backoff; other failures surface immediately as *APIError.
package datahub
