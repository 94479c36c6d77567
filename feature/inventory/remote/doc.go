// Package remote implements the typed client for the remote catalog and
// inventory API.
//
// All operations run over HTTPS with bearer-token authentication, scoped to a
// single store. Credentials come from configuration and their absence fails
// client construction: nothing in the engines ever issues an unauthenticated
// call.
//
// Response-handling conventions follow the remote API's semantics:
//
//   - product lookups (by SKU or by id) treat any non-200 as not-found;
//   - quantity reads fail loudly, except the "unlimited" state, which reads
//     as zero (a deliberate, documented caveat of the delta arithmetic);
//   - inventory adjustments only count HTTP 200 as success and are never
//     retried by the client.
package remote
