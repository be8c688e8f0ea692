// Package httputil provides shared HTTP response utilities for handlers.
//
// Every handler file should use these helpers instead of writing raw
// http.ResponseWriter calls. This keeps JSON formatting, error envelopes,
// and status code use consistent across all endpoints.
package httputil
