package domain

// ExecutionContext carries the invocation-wide mode flags, so that checks
// and actions don't depend on process-global state.
type ExecutionContext struct {
	Silent      bool
	Interactive bool
}
