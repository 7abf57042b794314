// cmd/publishx/run.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"publishx/internal/adapters/output"
	"publishx/internal/core/domain"
	"publishx/internal/core/usecases"
	"publishx/internal/platform/eventbus"
	"publishx/internal/platform/metrics"
	"publishx/internal/platform/registry"
	"publishx/internal/platform/ui"
	"publishx/internal/plugins/common"
)

// starter prepara una ejecución con una de las fachadas de usecases.
type starter func(ctx context.Context, pub *usecases.Publisher, req usecases.Request) (*usecases.Run, error)

type stageCommand struct {
	use     string
	aliases []string
	short   string
	start   starter
}

var singleStages = []stageCommand{
	{"collect", []string{"select"}, "Run only the collection stage", usecases.CollectIter},
	{"validate", nil, "Run only the validation stage", usecases.ValidateIter},
	{"extract", nil, "Run only the extraction stage", usecases.ExtractIter},
	{"integrate", []string{"conform"}, "Run only the integration stage", usecases.IntegrateIter},
}

func newPublishCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "publish",
		Aliases: []string{"run"},
		Short:   "Run the full pipeline (or the stages given with --stage)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			boundaries := cc.cfg.Boundaries()
			return cc.execute(cmd, func(ctx context.Context, pub *usecases.Publisher, req usecases.Request) (*usecases.Run, error) {
				req.Boundaries = boundaries
				return usecases.PublishIter(ctx, pub, req)
			})
		},
	}
}

func newStageCommand(cc *commandContext, s stageCommand) *cobra.Command {
	return &cobra.Command{
		Use:     s.use,
		Aliases: s.aliases,
		Short:   s.short + " (plus pre-collect and post-integrate plugins)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cc.execute(cmd, s.start)
		},
	}
}

// execute ejecuta el pipeline, imprime los resultados y escribe los reportes.
func (c *commandContext) execute(cmd *cobra.Command, start starter) error {
	cfg := c.cfg
	logger := c.logger

	ctx, cancel := rootContext(cmd.Context(), cfg.Timeout())
	defer cancel()

	plugins, err := registry.FilterByName(registry.Global().Discover(), cfg.Only, cfg.Skip)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}

	bus := eventbus.Global()
	collector := metrics.NewCollector()
	collector.Attach(bus)
	defer collector.Detach()

	presenterOut := cmd.OutOrStdout()
	if cfg.JSON {
		presenterOut = cmd.ErrOrStderr()
	}
	presenter := ui.Select(cfg.UIMode(), presenterOut, cfg.JSON)
	_, interactive := presenter.(*ui.PTermPresenter)

	pub := usecases.NewPublisher(usecases.PublisherOptions{
		Notifier:  bus,
		Logger:    logger,
		Presenter: presenter,
	})

	run, err := start(ctx, pub, usecases.Request{
		Context: newWorkContext(cfg.Manifest, cfg.OutputDir),
		Plugins: plugins,
		Targets: cfg.Targets,
	})
	if err != nil {
		return err
	}

	var stream *output.StreamWriter
	if cfg.JSON {
		stream = output.NewStreamWriter(cmd.OutOrStdout(), logger)
	}

	var results []domain.Result
	for r := range run.Results() {
		results = append(results, r)
		if stream != nil {
			stream.Write(r)
		}
	}

	if !cfg.JSON && !interactive {
		if err := output.Table(cmd.OutOrStdout(), results); err != nil {
			logger.Warn("failed to render results", "error", err.Error())
		}
	}

	summary := run.Summary()
	if cfg.OutputDir != "" {
		path, err := output.WriteSummary(cfg.OutputDir, summary, run.Context())
		if err != nil {
			logger.Err(err, "phase", "output")
		} else {
			logger.Debug("summary written", "path", path)
		}
	}

	if cfg.MetricsFile != "" {
		if err := collector.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Err(err, "phase", "metrics")
		}
	}

	if err := run.Err(); err != nil {
		return &exitError{code: exitFailure, err: err}
	}
	if summary.Failed > 0 {
		return &exitError{
			code: exitFailure,
			err:  fmt.Errorf("%d of %d results failed (run %s)", summary.Failed, summary.Results, summary.RunID),
		}
	}
	return nil
}

// newWorkContext prepara el context con las claves que leen los plugins built-in.
func newWorkContext(manifest, outputDir string) *domain.Context {
	c := domain.NewContext()
	if manifest != "" {
		c.Data[common.KeyManifestPath] = manifest
	}
	if outputDir != "" {
		c.Data[common.KeyOutputDir] = outputDir
	}
	return c
}

// rootContext cancela la ejecución con SIGINT/SIGTERM o al vencer el timeout.
func rootContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	if timeout > 0 {
		tctx, cancel := context.WithTimeout(ctx, timeout)
		return tctx, func() {
			cancel()
			stop()
		}
	}
	return ctx, stop
}
