package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/logger"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [recipe...]",
	Short: "Re-run recipes when inputs change",
	Long: `Watches the work directory and re-runs the recipes whenever an exported
morphology (*.morph.cell.nml) or the recipe file changes. The recipes run
once at start. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "quiet period before re-running")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if _, err := producer(); err != nil {
		return err
	}
	if app.Workdir == "" {
		return errors.New("work directory not configured")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dirs := []string{app.Workdir}
	if app.RecipeFile != "" {
		if d := filepath.Dir(app.RecipeFile); d != filepath.Clean(app.Workdir) {
			dirs = append(dirs, d)
		}
	}
	for _, d := range dirs {
		if err := watcher.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rerun := func(ev fsnotify.Event) {
		if app.RecipeFile != "" && sameFile(ev.Name, app.RecipeFile) && app.ReloadRecipes != nil {
			if err := app.ReloadRecipes(); err != nil {
				logger.Warn("reload recipes: %v", err)
				return
			}
		}
		if err := produce(cmd, args...); err != nil {
			logger.Warn("%v", err)
		}
	}

	if err := produce(cmd, args...); err != nil {
		logger.Warn("%v", err)
	}
	newPrinter(cmd).muted(fmt.Sprintf("watching %s", strings.Join(dirs, ", ")))

	return watchLoop(ctx, watcher.Events, watcher.Errors, watchDebounce, app.RecipeFile, rerun)
}

// watchLoop calls fire with the last relevant event once events have been
// quiet for debounce. It returns when ctx is done or a channel closes.
func watchLoop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	debounce time.Duration,
	recipeFile string,
	fire func(fsnotify.Event),
) error {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending fsnotify.Event
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !watchTrigger(ev, recipeFile) {
				continue
			}
			logger.Debug("watch: %s %s", ev.Op, ev.Name)
			pending = ev
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
			timerC = timer.C
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		case <-timerC:
			timerC = nil
			fire(pending)
		}
	}
}

// watchTrigger reports whether ev should cause a re-run. Written models,
// hidden files, removals and permission changes are ignored.
func watchTrigger(ev fsnotify.Event, recipeFile string) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	if recipeFile != "" && sameFile(ev.Name, recipeFile) {
		return true
	}
	return strings.HasSuffix(base, domain.MorphologySuffix)
}

func sameFile(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
