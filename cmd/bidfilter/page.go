package main

import (
	"fmt"

	"github.com/fwojciec/bidfilter"
	"github.com/fwojciec/bidfilter/panel"
)

// Run executes the sort command.
func (c *SortCmd) Run(deps *Dependencies) error {
	return deps.runPage(c.PageArgs, func(ctrl *panel.Controller) bidfilter.Status {
		return ctrl.SortByNewest(panel.DefaultOptions())
	})
}

// Run executes the reset command.
func (c *ResetCmd) Run(deps *Dependencies) error {
	return deps.runPage(c.PageArgs, func(ctrl *panel.Controller) bidfilter.Status {
		return ctrl.Reset()
	})
}

// Run executes the highlight command.
func (c *HighlightCmd) Run(deps *Dependencies) error {
	opts := panel.DefaultOptions()
	opts.HideOthers = c.HideOthers
	return deps.runPage(c.PageArgs, func(ctrl *panel.Controller) bidfilter.Status {
		if c.Week {
			return ctrl.ShowThisWeek(opts)
		}
		return ctrl.ShowToday(opts)
	})
}

// Validate rejects a negative day count.
func (c *HideCmd) Validate() error {
	if c.Days < 0 {
		return bidfilter.Errorf(bidfilter.EINVALID, "--days must not be negative")
	}
	return nil
}

// Run executes the hide command.
func (c *HideCmd) Run(deps *Dependencies) error {
	return deps.runPage(c.PageArgs, func(ctrl *panel.Controller) bidfilter.Status {
		n := ctrl.HideOlderThan(c.Days)
		if n == 0 {
			return bidfilter.Info(fmt.Sprintf("No bids older than %d days", c.Days))
		}
		return bidfilter.Info(fmt.Sprintf("Hid %d bids older than %d days", n, c.Days))
	})
}

// Run executes the apply command.
func (c *ApplyCmd) Run(deps *Dependencies) error {
	return deps.runPage(c.PageArgs, func(ctrl *panel.Controller) bidfilter.Status {
		return ctrl.ApplySettings()
	})
}
