package core

// Event is the round outcome reported back to the external round driver.
// The driver maps it through its round-transition table; this module never
// advances consensus state itself.
type Event string

const (
	EventDone    Event = "DONE"
	EventError   Event = "ERROR"
	EventNoFunds Event = "NO_FUNDS"
	EventWait    Event = "WAIT"
)
