// Package middleware groups the HTTP middleware used by the server:
// ray-id request correlation and the API key guard.
package middleware
