// Package flows implements the user-facing form workflows: registration,
// login, password reset and entry submission.
//
// Each form is driven by a [Machine] that moves from Idle to Submitting and
// then to Succeeded or Failed. Local validation runs first; when it fails the
// form stays Idle with a message and no request is sent. Nothing is retried
// automatically: a failed form returns to Idle only when the user edits it.
//
// Successful flows hand a [Route] to the injected [Navigator]. The flows never
// render anything themselves.
package flows
