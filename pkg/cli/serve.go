package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/secmon-lab/caseflow/pkg/cli/config"
	httpctrl "github.com/secmon-lab/caseflow/pkg/controller/http"
	"github.com/secmon-lab/caseflow/pkg/service/worker"
	"github.com/secmon-lab/caseflow/pkg/usecase"
	"github.com/secmon-lab/caseflow/pkg/utils/logging"
	"github.com/secmon-lab/caseflow/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var baseURL string
	var intakeInterval time.Duration
	var intakeDelay time.Duration
	var repoCfg config.Repository
	var slackCfg config.Slack
	var reqCfg config.Requirements

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("CASEFLOW_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Base URL for links in notifications (e.g., https://your-domain.com)",
			Sources:     cli.EnvVars("CASEFLOW_BASE_URL"),
			Destination: &baseURL,
		},
		&cli.DurationFlag{
			Name:        "intake-interval",
			Usage:       "Interval between passes assigning pending cases to the OKW team",
			Value:       time.Second,
			Sources:     cli.EnvVars("CASEFLOW_INTAKE_INTERVAL"),
			Destination: &intakeInterval,
		},
		&cli.DurationFlag{
			Name:        "intake-delay",
			Usage:       "Minimum time a case stays pending before intake",
			Value:       time.Second,
			Sources:     cli.EnvVars("CASEFLOW_INTAKE_DELAY"),
			Destination: &intakeDelay,
		},
	}

	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, reqCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			requirements, err := reqCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load requirement table")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			ucOpts := []usecase.Option{
				usecase.WithRequirementTable(requirements),
			}

			notifier, err := slackCfg.Configure(baseURL)
			if err != nil {
				return goerr.Wrap(err, "failed to configure slack")
			}
			if notifier != nil {
				ucOpts = append(ucOpts, usecase.WithNotifier(notifier))
			}

			uc := usecase.New(repo, ucOpts...)

			httpHandler, err := httpctrl.New(uc)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			intakeWorker := worker.NewIntakeWorker(repo, uc.Case, intakeInterval, intakeDelay)
			if err := intakeWorker.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start intake worker")
			}

			eg, ctx := errgroup.WithContext(ctx)
			eg.Go(func() error {
				logging.Default().Info("Starting HTTP server", "addr", addr, "slack", slackCfg)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to start server")
				}
				return nil
			})
			eg.Go(func() error {
				<-ctx.Done()
				logging.Default().Info("Shutting down")

				intakeWorker.Stop()

				shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			})

			return eg.Wait()
		},
	}
}
