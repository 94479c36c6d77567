// Package loader wires feature packages onto the HTTP server.
// Features register their routes through a small Manager so the start
// command stays free of per-feature knowledge.
package loader
