// Package session holds the credential issued by the catalog service at login.
//
// A [Store] is the single source of truth for the bearer token and user id.
// The catalog transport reads it at call time, the auth flow writes it on a
// successful login, and `auth logout` clears it. When a [Persister] is
// attached the credential survives restarts of the CLI.
//
// The store never expires or refreshes a credential on its own. [Inspect]
// decodes the token's claims for display only.
package session
