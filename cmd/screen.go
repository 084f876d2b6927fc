package cmd

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"github.com/spiffcs/screener/config"
	"github.com/spiffcs/screener/internal/constants"
	"github.com/spiffcs/screener/internal/enrich"
	"github.com/spiffcs/screener/internal/ghclient"
	"github.com/spiffcs/screener/internal/log"
	"github.com/spiffcs/screener/internal/model"
	"github.com/spiffcs/screener/internal/output"
	"github.com/spiffcs/screener/internal/schema"
	"github.com/spiffcs/screener/internal/service"
	"github.com/spiffcs/screener/internal/tui"
)

// stageTasks maps pipeline stages onto TUI rows.
var stageTasks = map[service.Stage]tui.TaskID{
	service.StageLoad:    tui.TaskLoad,
	service.StageResolve: tui.TaskResolve,
	service.StageScreen:  tui.TaskScreen,
	service.StageMerge:   tui.TaskMerge,
}

var stageNames = map[service.Stage]string{
	service.StageLoad:    "load",
	service.StageResolve: "resolve",
	service.StageScreen:  "screen",
	service.StageMerge:   "merge",
}

// screenRuntime bundles TUI-related state that's threaded through the screen command.
type screenRuntime struct {
	useTUI  bool
	events  chan tui.Event
	tuiDone chan error
}

// startTUI initializes and starts the TUI goroutine if TUI mode is enabled.
func (rt *screenRuntime) startTUI() {
	if !rt.useTUI {
		return
	}
	rt.events = make(chan tui.Event, 100)
	rt.tuiDone = make(chan error, 1)
	go func() {
		rt.tuiDone <- tui.Run(rt.events, tui.WithTitle("Screening applicants"))
	}()
}

// close closes the event channel and waits for the TUI to finish.
func (rt *screenRuntime) close() {
	if rt.events == nil {
		return
	}
	close(rt.events)
	if rt.tuiDone != nil {
		if err := <-rt.tuiDone; err != nil {
			log.Debug("progress display exited with error", "error", err)
		}
	}
	rt.events = nil
}

// onStage forwards pipeline stage changes to the TUI or the log.
func (rt *screenRuntime) onStage(stage service.Stage, status service.StageStatus, count int, err error) {
	task := stageTasks[stage]

	switch status {
	case service.StageRunning:
		tui.SendTaskEvent(rt.events, task, tui.StatusRunning)
		log.Debug("stage started", "stage", stageNames[stage])
	case service.StageComplete:
		tui.SendTaskEvent(rt.events, task, tui.StatusComplete, tui.WithCount(count))
		if stage == service.StageScreen && !rt.useTUI {
			log.ProgressDone()
		}
		log.Info("stage complete", "stage", stageNames[stage], "count", count)
	case service.StageFailed:
		tui.SendTaskEvent(rt.events, task, tui.StatusError, tui.WithError(err))
	}
}

// progressFunc returns the enrichment progress callback. TUI updates are
// throttled by time, log output by percentage. The first rate-limited
// result raises the rate limit warning once.
func (rt *screenRuntime) progressFunc(client *ghclient.Client) enrich.ProgressFunc {
	var lastLogPercent int64 = -1
	var lastTUIUpdate int64 // Unix nanoseconds
	var limitReported int32
	tuiUpdateInterval := int64(constants.TUIUpdateInterval)

	return func(completed, total int, username string, result model.ActivityResult) {
		log.Trace("screened profile", "username", username, "outcome", result.Outcome)

		if result.Outcome == model.OutcomeRateLimited && atomic.CompareAndSwapInt32(&limitReported, 0, 1) {
			_, _, resetAt, _ := client.RateLimitStatus()
			tui.SendEvent(rt.events, tui.RateLimitEvent{Limited: true, ResetAt: resetAt})
			if !rt.useTUI {
				log.ProgressClear()
				log.Warn("profile API rate limit reached", "resets", resetAt.Format(time.Kitchen))
			}
		}

		if rt.useTUI {
			now := time.Now().UnixNano()
			lastUpdate := atomic.LoadInt64(&lastTUIUpdate)
			if now-lastUpdate >= tuiUpdateInterval || completed == total {
				if atomic.CompareAndSwapInt64(&lastTUIUpdate, lastUpdate, now) {
					tui.SendTaskEvent(rt.events, tui.TaskScreen, tui.StatusRunning,
						tui.WithProgress(float64(completed)/float64(total)),
						tui.WithMessage(fmt.Sprintf("%d/%d", completed, total)))
				}
			}
			return
		}

		percent := int64(completed*100) / int64(total)
		if percent != atomic.LoadInt64(&lastLogPercent) && percent%constants.LogThrottlePercent == 0 {
			atomic.StoreInt64(&lastLogPercent, percent)
			log.Progress("Screening profiles: %d/%d (%d%%)...", completed, total, percent)
		}
	}
}

// NewCmdScreen creates the screen command.
func NewCmdScreen(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screen <csv>",
		Short: "Screen applicants in a CSV export (same as root screener)",
		Long: `Reads the applicant export, looks up each unique GitHub identity
once, and writes one report row per applicant in input order.`,
		Args: csvArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreen(cmd, args, opts)
		},
	}

	addScreenFlags(cmd, opts)
	return cmd
}

// addScreenFlags adds the screen-specific flags to a command.
func addScreenFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (json, table, markdown)")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Only screen applicants with this approval status")
	cmd.Flags().DurationVar(&opts.Delay, "delay", constants.DefaultPacingDelay, "Pause between one profile lookup finishing and the next starting (0 disables pacing)")
	cmd.Flags().IntVar(&opts.Workers, "workers", constants.DefaultWorkers, "Concurrent profile lookups")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", constants.DefaultRequestTimeout, "Timeout for each API request")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")

	// TUI flag with tri-state: nil = auto, true = force, false = disable
	cmd.Flags().Var(newTUIFlag(opts), "tui", "Enable/disable TUI progress (true, false, auto)")
	cmd.Flags().Lookup("tui").NoOptDefVal = "true"
}

// csvArg accepts at most one positional argument. A missing path is
// reported by the loader so it surfaces as a setup error.
func csvArg(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return schema.NewSetupError(schema.KindUsage, "",
			fmt.Errorf("expected a single CSV path, got %d arguments", len(args)))
	}
	return nil
}

func runScreen(cmd *cobra.Command, args []string, opts *Options) error {
	ctx := cmd.Context()

	var path string
	if len(args) > 0 {
		path = args[0]
	}

	useTUI := shouldUseTUI(opts)

	// Suppress logs during TUI to avoid interleaving with the display
	if useTUI {
		log.Initialize(opts.Verbosity, io.Discard)
	} else {
		log.Initialize(opts.Verbosity, os.Stderr)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	format, err := resolveFormat(opts, cfg)
	if err != nil {
		return err
	}

	settings, err := applyFlagOverrides(cmd, opts, cfg.GetScreening())
	if err != nil {
		return err
	}

	client, err := ghclient.NewClient(ctx, ghclient.Options{
		Token:              cfg.GetGitHubToken(),
		BaseURL:            settings.APIURL,
		Timeout:            settings.RequestTimeout,
		PageSize:           settings.PageSize,
		ContributionEvents: settings.ContributionEvents,
	})
	if err != nil {
		return err
	}
	if !client.Authenticated() {
		log.Info("GITHUB_TOKEN not set, using the unauthenticated rate limit")
	}

	rt := &screenRuntime{useTUI: useTUI}
	rt.startTUI()

	screener := service.New(client, service.Options{
		Columns:     cfg.GetColumns(),
		Status:      opts.Status,
		Workers:     settings.Workers,
		PacingDelay: settings.PacingDelay,
		OnStage:     rt.onStage,
		OnProgress:  rt.progressFunc(client),
	})

	report, err := screener.Run(ctx, path)
	rt.close()
	if err != nil {
		return err
	}

	if remaining, limit, _, _ := client.RateLimitStatus(); limit > 0 {
		log.Debug("rate limit after run", "remaining", remaining, "limit", limit)
	}

	return output.NewFormatter(format).Format(report, cmd.OutOrStdout())
}

// resolveFormat picks the flag value, then the configured default.
func resolveFormat(opts *Options, cfg *config.Config) (output.Format, error) {
	name := opts.Format
	if name == "" {
		name = cfg.DefaultFormat
	}
	return output.ParseFormat(name)
}

// applyFlagOverrides layers explicitly set flags over the config values.
// Flag values get the same bounds the config file enforces.
func applyFlagOverrides(cmd *cobra.Command, opts *Options, s config.Screening) (config.Screening, error) {
	flags := cmd.Flags()
	if flags.Changed("delay") {
		if opts.Delay < 0 {
			return s, flagError("--delay must not be negative, got %v", opts.Delay)
		}
		s.PacingDelay = opts.Delay
	}
	if flags.Changed("workers") {
		if opts.Workers < 1 || opts.Workers > constants.MaxWorkers {
			return s, flagError("--workers must be between 1 and %d, got %d", constants.MaxWorkers, opts.Workers)
		}
		s.Workers = opts.Workers
	}
	if flags.Changed("timeout") {
		if opts.Timeout <= 0 {
			return s, flagError("--timeout must be greater than zero, got %v", opts.Timeout)
		}
		s.RequestTimeout = opts.Timeout
	}
	return s, nil
}

func flagError(format string, args ...any) error {
	return schema.NewSetupError(schema.KindUsage, "", fmt.Errorf(format, args...))
}

