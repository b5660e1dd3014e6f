// Package gate implements the authentication gate that stands between
// process start and the presentation layer: a single-threaded state machine
// driven by discrete user and platform events.
//
// The gate decides, once per process, how the session unlocks: first-run
// enrollment, a biometric challenge when the platform offers one, or PIN
// entry as the fallback. The credential manager stays the source of truth;
// the biometric path is only a convenience layer on top of it. Unlocked is
// terminal for the process lifetime — there is no re-lock transition, and a
// cold start always begins locked.
package gate
