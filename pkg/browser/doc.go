// Package browser owns the browser session a demo runs in.
//
// The package defines the narrow driver contract the rest of the module
// depends on (Driver, Browser, Context and Page) and a playwright-go
// implementation of it. Session acquires one Browser, one Context and one
// Page in that order and releases them in reverse, exactly once, whatever
// happens to the run in between.
//
// Example usage:
//
//	driver := browser.NewPlaywrightDriver(browser.PlaywrightOptions{})
//	session, err := browser.Open(driver, browser.Options{
//		Headless: true,
//		Viewport: "big",
//		Record:   true,
//	}, logger)
//	if err != nil {
//		return err
//	}
//	defer session.Close()
//
//	err = session.Page().Goto("http://localhost:5000/", browser.WaitUntilDOMContentLoaded)
package browser
