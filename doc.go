// Package cres reduces negative-weight events in a weighted Monte-Carlo
// particle-collision sample by cell resampling: grouping each
// negative-weight "seed" event with its nearest kinematic neighbours and
// redistributing weight inside the group so no member carries a negative
// weight, within a configurable cell-size cap.
//
// The engine is organized under single-concern subpackages:
//
//	event/      — the internal Event/FourMomentum/Weight model and Pool
//	distance/   — the infrared-safe optimal-matching distance metric
//	neighbour/  — naive and vantage-point-tree nearest-neighbour search
//	cell/       — cell growth and weight redistribution
//	resample/   — the partitioned resampling driver and seed strategies
//	unweight/   — probabilistic weight-floor clipping
//	cluster/    — anti-kt/kt/Cambridge-Aachen jet clustering
//	convert/    — raw-event-to-internal-event conversion
//	ioformat/   — Reader/Writer interfaces plus hepmc2, lhef, rootntuple,
//	              stripperxml, and compression adapters
//	cres/       — the orchestrator tying read → convert → resample →
//	              unweight → write together
//	cmd/cres/   — the command-line front end
//
// See DESIGN.md for how each package is grounded in its reference
// implementation.
package cres
