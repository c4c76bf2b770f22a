// See event.go for the Event type and event invariants; pool.go for the
// shared Pool partitioning used by package resample.
package event
