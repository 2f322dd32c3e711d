// Package auth provides credential verification and token issuance for the
// miotlang HTTP API.
//
// The API has a single configured credential: an admin username plus an
// Argon2id password hash in PHC string format, generated with the
// `miotlang hash-password` command. A successful login issues a short-lived
// HS256 JWT access token; every protected endpoint validates the token
// signature and expiry with no database involvement.
package auth
