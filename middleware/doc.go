// Package middleware exposes the HTTP adapters around mockauth.Engine: a
// bearer-token guard that resolves the Authorization header into the current
// account, and the CORS filter for the browser frontend.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement authentication logic itself; all decisions are delegated to
// Engine.CurrentAccount.
package middleware
