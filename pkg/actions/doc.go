// Package actions executes scenario steps against a browser page.
//
// Each step kind has its own handler (NavigateHandler, ClickHandler,
// FillHandler, WaitHandler, ScrollHandler and MessageHandler). Dispatcher
// renders the step's caption, selects the handler with an exhaustive type
// switch over the scenario.Action variants and reduces the outcome to a
// boolean. Retries live inside the handlers that need them; the dispatcher
// never retries.
package actions
