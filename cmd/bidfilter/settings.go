package main

import (
	"fmt"

	"github.com/fwojciec/bidfilter"
)

// Run executes the settings command. Without flags it prints the saved
// settings.
func (c *SettingsCmd) Run(deps *Dependencies) error {
	var (
		settings bidfilter.Settings
		err      error
	)
	if c.AutoHighlight == nil && c.HideOldBids == nil {
		settings, err = deps.Settings.FindSettings(deps.Ctx)
	} else {
		settings, err = deps.Settings.UpdateSettings(deps.Ctx, bidfilter.SettingsUpdate{
			AutoHighlight: c.AutoHighlight,
			HideOldBids:   c.HideOldBids,
		})
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bidfilter.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "auto-highlight: %t\n", settings.AutoHighlight)
	fmt.Fprintf(deps.Stdout, "hide-old-bids:  %t\n", settings.HideOldBids)
	return nil
}
