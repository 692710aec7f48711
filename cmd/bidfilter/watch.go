package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fwojciec/bidfilter"
	"github.com/fwojciec/bidfilter/panel"
	"github.com/fwojciec/bidfilter/watch"
	"golang.org/x/sync/errgroup"
)

// Run executes the watch command. It applies the action once, then
// re-applies it whenever the page changes on disk or the saved settings
// change, until interrupted.
func (c *WatchCmd) Run(deps *Dependencies) error {
	interval := c.Interval
	if interval <= 0 {
		interval = deps.Config.PollInterval
	}
	window := c.Window
	if window <= 0 {
		window = deps.Config.DebounceWindow
	}

	settings, err := deps.Settings.FindSettings(deps.Ctx)
	if err != nil {
		return err
	}
	parser, err := deps.newParser(c.SideTable)
	if err != nil {
		return err
	}
	ctrl := deps.newController(nil, parser, settings)
	poller := watch.NewPoller(c.File, interval)

	// reload reads the page into the controller. The poller baseline is
	// taken first, so any write after it counts as a change.
	reload := func(ctx context.Context) error {
		if err := poller.Rebase(); err != nil {
			return err
		}
		doc, err := deps.Store.Load(ctx, c.File)
		if err != nil {
			return err
		}
		ctrl.Doc = doc
		return nil
	}

	// commit writes the result and prints status. When writing in place and
	// the page changed since reload, nothing is written: the poller reports
	// that change and the newer page gets its own pass.
	commit := func(status bidfilter.Status) error {
		if c.Out == "" {
			modified, err := poller.Modified()
			if err != nil {
				return err
			}
			if modified {
				deps.Logger.Debug("page changed during re-apply", "path", c.File)
				return nil
			}
		}
		if err := deps.Store.Save(deps.Ctx, c.Output(), ctrl.Doc); err != nil {
			return fmt.Errorf("failed to save %s: %w", c.Output(), err)
		}
		if c.Out == "" {
			// Our own write must not count as a change.
			if err := poller.Rebase(); err != nil {
				return err
			}
		}
		printStatus(deps.Stdout, status)
		return nil
	}

	if err := reload(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bidfilter.ErrorMessage(err))
		return err
	}
	if err := commit(c.apply(ctrl)); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(deps.Ctx)
	failed := make(chan error, 1)
	report := func(err error) {
		select {
		case failed <- err:
		default:
		}
	}

	var mu sync.Mutex
	debouncer := watch.NewDebouncer(window, func() {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		if err := reload(ctx); err != nil {
			deps.Logger.Error("reload page", "path", c.File, "err", err)
			return
		}
		if err := commit(ctrl.Reapply(panel.ReasonMutation)); err != nil {
			report(err)
		}
	})
	defer debouncer.Stop()

	g.Go(func() error {
		return poller.Run(ctx, func(context.Context) error {
			debouncer.Trigger()
			return nil
		})
	})
	g.Go(func() error {
		return watch.Every(ctx, interval, func(ctx context.Context) error {
			s, err := deps.Settings.FindSettings(ctx)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			if s == ctrl.Session.Settings {
				return nil
			}
			if err := reload(ctx); err != nil {
				deps.Logger.Error("reload page", "path", c.File, "err", err)
				return nil
			}
			return commit(ctrl.UpdateSettings(s))
		})
	})
	g.Go(func() error {
		select {
		case err := <-failed:
			return err
		case <-ctx.Done():
			return nil
		}
	})
	deps.Logger.Info("watching page", "path", c.File, "action", c.Action)

	err = g.Wait()
	if cause := deps.Ctx.Err(); cause != nil && errors.Is(err, cause) {
		return nil
	}
	return err
}

// apply runs the watched action as a direct user action.
func (c *WatchCmd) apply(ctrl *panel.Controller) bidfilter.Status {
	switch c.Action {
	case "sort":
		return ctrl.SortByNewest(panel.DefaultOptions())
	case "today":
		return ctrl.ShowToday(panel.DefaultOptions())
	case "week":
		return ctrl.ShowThisWeek(panel.DefaultOptions())
	}
	return ctrl.ApplySettings()
}
