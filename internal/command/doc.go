// Package command implements the sub-command registry and dispatcher at the
// heart of the console core.
//
// A Registry maps sub-command names to handlers with declared argument tags.
// Registration is last-write-wins so later plugins may override built-ins;
// enumeration is always lexicographic so diagnostic output is deterministic.
// An entry may instead hold a nested Registry, in which case dispatch
// recurses on the token tail (the "auth" tree works this way).
//
// The Dispatcher is exception-opaque: handler panics are recovered at the
// dispatch boundary, reported as a generic internal error, and never reach
// the host. Unknown or empty input produces the registry's help listing
// rather than an error. Argument tags are documentation, not validation -
// handlers interpret and validate their own token tail and report usage
// problems through the sink themselves.
//
// Locking: the registry's RWMutex is held for the duration of each
// register/unregister/lookup/enumerate call only. Dispatch resolves the
// entry under the lock, releases it, then invokes, so the registry stays
// usable while a slow handler blocks on external I/O.
package command
