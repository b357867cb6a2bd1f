// Package docs orchestrates the documentation-project build pipeline for
// the three categories of documentable unit: the core's own package tree,
// custom packages, and plugins.
//
// The pipeline is three independent lifecycle verbs over disk-observed
// state: create (scaffolding exists), generate (description files exist),
// build (final artifacts exist). Transitions are monotonic and idempotent -
// creating an existing project or generating an absent one is a reported
// no-op, never an error. State is re-probed from disk on every invocation;
// no unit object survives between calls. Failures from the build tool are
// absorbed at the engine boundary and reported with package context; no
// partial-state rollback is attempted, so a mid-transition failure leaves
// disk state exactly as the tool left it.
//
// Category resolution has a fixed precedence: the reserved core name, then
// custom packages, then plugins. A name matching no category reports the
// three valid categories and triggers no lifecycle call.
package docs
