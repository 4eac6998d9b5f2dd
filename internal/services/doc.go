// Package services implements the HTTP client for the algorithm catalog.
//
// # Transport
//
// [APIService] is the only type that touches the network. Every request gets a
// JSON content type and an X-Request-ID header, waits on a [rate.Limiter] and
// runs under the configured client timeout. Requests marked Auth read the
// bearer token from the session store at call time, so a credential set by a
// login is used by the very next call. With no credential the request is still
// sent and the service decides.
//
// # Errors
//
// Network failures wrap [shared.ErrTransport]. Non-2xx responses return a
// [*shared.StatusError], which unwraps to [shared.ErrUnauthorized] for 401 and
// 403. Bodies that parse but lack required fields fail with [shared.ErrDataShape].
//
// # Catalog and Auth
//
// [CatalogService] and [AuthService] map the service's endpoints onto the
// [Catalog] and [Authenticator] interfaces. [BuildSearchParams] turns a
// [models.SearchQuery] into query parameters, dropping empty fields.
package services
