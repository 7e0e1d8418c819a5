// Package password implements password hashing and verification with
// Argon2id defaults.
//
// # Output format
//
// Hashes are encoded in PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// The salt is randomized per call, so hashing the same password twice yields
// different strings; [Argon2.Verify] is the only way to test equality.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Password policy (minimum
// length, confirmation matching) is enforced by the Engine.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords; callers supply plaintext and receive
//     hashes.
//   - Import any other mockauth package.
//   - Log plaintext passwords or hash parameters at runtime.
package password
