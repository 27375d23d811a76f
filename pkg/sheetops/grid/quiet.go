package grid

// UpdateSuspender is implemented by hosts that can suppress visible updates
// (screen repaints, alerts) while a batch operation mutates the grid.
type UpdateSuspender interface {
	// SuspendUpdates enters quiet mode and returns the function that
	// leaves it. Calls may nest; updates resume when every returned
	// function has run.
	SuspendUpdates() (resume func())
}

// Quiet enters quiet mode on the host for the duration of one operation.
// The returned release function must run on every exit path:
//
//	defer grid.Quiet(host)()
//
// Hosts that do not implement UpdateSuspender get a no-op release.
func Quiet(host interface{}) (release func()) {
	if s, ok := host.(UpdateSuspender); ok {
		return s.SuspendUpdates()
	}
	return func() {}
}
