// Package engine contains the simulation controller for Hollowheart.
//
// The Engine owns the depth state machine and runs one *_system.go per
// mechanic from Update. It never starts goroutines or timers; Ticker is
// the external driver and Session serializes commands against ticks.
package engine
