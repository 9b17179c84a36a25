package reactive

// Cleanup is returned by an effect callback to release resources acquired
// during the run. It is invoked before the effect re-runs and when the
// effect is disposed.
type Cleanup func()
