// Package executor runs a scenario end to end.
//
// A Runner loads the scenario file, checks that the target server is
// reachable, opens one browser session and hands each step to a
// StepExecutor in file order. Between steps it honours the pause flag of
// the on-page control surface and the scenario's action delay. A failed
// optional step is reported and skipped over; a failed required step
// ends the run. The session is torn down exactly once whatever happens,
// and the outcome is summarised on the console and, when enabled, written
// as run.json and summary.md artifacts.
package executor
