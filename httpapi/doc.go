// Package httpapi mounts the mock authentication API over HTTP. It owns
// request parsing, response schemas, and status-code mapping; every
// authentication decision is delegated to mockauth.Engine.
//
// Routes live under /api/v1/auth plus the /api/health probe. Error bodies
// are {"detail": "..."} objects, the shape the dashboard frontend expects.
package httpapi
