// Package collector provides the session-scoped accumulation layer between
// gameplay code and the packet encoders.
//
// A Session is the explicit composition root: it owns the session identity,
// the offset-timestamp epoch and the logger, and is passed by reference to
// every collector. There is no package-level state and no implicit
// initialization; construct, use, close.
//
// Collectors buffer records under a mutex and hand whole batches to an
// encoder on Flush. Flush swaps the accumulation buffer while holding the
// lock and encodes outside it, so gameplay threads appending records never
// wait on encoding. Bounded collectors drop their oldest records when full,
// matching the sampling behavior telemetry wants: recent data beats old
// data.
package collector
