// Package route maps task types to the handler families that execute them.
// The routing table is a single static data structure, total over the
// declared task types; each family wraps one downstream dependency (or, for
// the hybrid family, a sequential composition of two).
package route
