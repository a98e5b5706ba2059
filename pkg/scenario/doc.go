// Package scenario loads declarative demo walkthroughs from YAML.
//
// A scenario file names the application under demonstration, its base URL,
// pacing configuration and an ordered list of steps:
//
//	name: Quick tour
//	base_url: http://localhost:5000
//	config:
//	  action_delay: 1.5   # seconds between steps
//	  slow_motion: 50     # milliseconds added to every driver call
//	steps:
//	  - action: navigate
//	    url: /dashboard
//	    description: Open the dashboard
//	  - action: click
//	    selector: "#export"
//	    fallback: ["button.export", {selector: "text=Export"}]
//	    optional: true
//
// Every step decodes into one of a closed set of Action variants. Unknown
// action names are rejected at load time, so a loaded Scenario only ever
// holds steps the runner knows how to execute. Loaded values are read-only;
// WithSpeed returns an adjusted copy.
package scenario
