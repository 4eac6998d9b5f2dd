// Package models defines the catalog data model shared by the transport, the view-model and the flows.
//
// The package contains two categories of types:
//
// 1. Catalog data received from the service
//   - [CatalogEntry] : one submitted algorithm with its source code
//   - [ID] : server-assigned identifier, accepted as a JSON number or string
//
// 2. Client-side values
//   - [Credential] : bearer token and user id of the current session
//   - [SearchQuery] : the six optional, independent search filters
//   - [NewEntry] : the fields of an entry about to be submitted
//
// Responses are decoded through [DecodeEntry], [DecodeEntries], [DecodeCredential] and [DecodeLanguages].
// They fail closed with [shared.ErrDataShape] when a required field is absent instead of trusting field presence.
package models
