// Package diary contains the core services of the application: the
// credential manager (PIN and profile name lifecycle) and the entry store
// (the persisted diary collection), plus the pure collection helpers the
// calendar and explore views are built on.
//
// Both services are thin authorities over the two persistent namespaces:
// the sealed secret store (PIN only) and the preference store (everything
// else). They own validation and error mapping; they hold no mutable state
// of their own, so a service value is safe to share.
package diary
