package services

import "time"

// Timer is a pending scheduled call.
type Timer interface {
	// Stop prevents the call from running. It reports false if the
	// call already ran or was already stopped.
	Stop() bool
}

// AfterFunc schedules f to run once after d.
// time.AfterFunc is the production implementation; tests inject a
// manual scheduler to control the debounce window.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
