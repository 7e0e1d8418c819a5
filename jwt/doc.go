// Package jwt manages access-token issuance and verification with strict,
// fail-closed validation semantics over a shared HMAC secret.
package jwt
