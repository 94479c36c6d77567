// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structure for server settings, such as the listen
// port, the API key and the origin tag stamped onto ledger rows created over HTTP.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings.
package server
