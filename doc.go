// Package mockauth provides the authentication engine behind the ArtIntel
// mock API: registration, email verification, login with JWT access tokens,
// password reset, and profile completion, backed by a pluggable account store.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build], provided the injected [AccountStore] serializes its own
// mutations (the store.Memory implementation does).
//
// # Architecture boundaries
//
// mockauth is the public surface. It exposes [Engine], [Builder], [Config],
// the [AccountStore] contract, and value types (AccountView, LoginResult,
// Notification). Credential hashing, token signing, and opaque token
// generation live under password/, jwt/, and internal/ and are reached only
// through Engine methods.
//
// # What this package must NOT do
//
//   - Return or log password hashes; every account leaving the engine is an
//     [AccountView].
//   - Reveal whether an email is registered from ResendVerification or
//     ForgotPassword; both report success regardless.
//   - Perform I/O during construction (Builder is allocation-only until
//     Build).
package mockauth
