// Package repositories implements SQLite persistence for client-side state.
//
// The catalog itself lives on the service and is never cached locally. What
// the client keeps is the login session, stored as rows of the key/value
// session table created by the embedded migrations in [shared].
//
// Key Implementations:
//   - [SessionRepository] : durable [session.Persister] for the bearer token and user id
package repositories
