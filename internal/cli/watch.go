package cli

import (
	"context"
	"io"
	"time"

	"github.com/aretw0/goap"
)

// settleDelay lets editors finish writing before the catalogue is reread.
const settleDelay = 100 * time.Millisecond

// WatchReload rebuilds the planner whenever the catalogue changes and hands
// every successful rebuild to apply. A broken catalogue is logged and the
// previous planner keeps serving until the next change. It returns when ctx
// is done, or at once with an error if the catalogue cannot be watched.
func WatchReload(ctx context.Context, app *App, out io.Writer, apply func(*goap.Planner)) error {
	watchCh, err := app.Planner().Watch(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watchCh:
			if !ok {
				return nil
			}
			app.Logger.Info("Change detected, triggering reload", "event", event)
			printSystemMessage(out, "Change detected in '%s'.", event)

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(settleDelay):
			}

			p, err := app.Reload()
			if err != nil {
				app.Logger.Error("Reload failed", "err", err)
				printSystemMessage(out, "Reload failed, keeping the previous catalogue: %v", err)
				continue
			}
			apply(p)
			printSystemMessage(out, "Catalogue reloaded (%d actions).", len(p.Catalogue()))
		}
	}
}
