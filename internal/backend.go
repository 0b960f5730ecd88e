package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markusressel/pid2go/internal/api"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/control_loop"
	"github.com/markusressel/pid2go/internal/controller"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/statistics"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RunDaemon() {
	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	err := pers.Init()
	if err != nil {
		ui.Fatal("Unable to initialize persistence at %s: %v", configuration.CurrentConfig.DbPath, err)
	}

	controllers, err := InitializeObjects(pers)
	if err != nil {
		ui.Fatal("Unable to initialize loops: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		enabled := configuration.CurrentConfig.Statistics.Enabled
		if enabled {
			// === Prometheus Exporter
			port := configuration.CurrentConfig.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = 9000
			}
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

			g.Add(func() error {
				ui.Info("Starting statistics server on port %d...", port)
				if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("cannot start prometheus metrics endpoint: %w", err)
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := server.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping statistics server: %v", err)
				}
			})
		}
	}
	{
		enabled := configuration.CurrentConfig.Api.Enabled
		if enabled {
			// === REST api
			rest := api.CreateRestService(pers, prometheus.DefaultRegisterer)
			host := configuration.CurrentConfig.Api.Host
			port := configuration.CurrentConfig.Api.Port

			g.Add(func() error {
				ui.Info("Starting REST api on %s:%d...", host, port)
				if err := rest.Start(fmt.Sprintf("%s:%d", host, port)); !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("cannot start REST api: %w", err)
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping REST api...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := rest.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping REST api: %v", err)
				}
			})
		}
	}
	{
		// === control loops
		for _, c := range controllers {
			loopController := c

			g.Add(func() error {
				err := loopController.Run(ctx)
				ui.Info("Controller for loop %s stopped.", loopController.GetId())
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Something went wrong: %v", err)
				}
				cancel()
			})
		}

		if len(controllers) == 0 {
			ui.Fatal("No valid loop configurations, exiting.")
		}
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	err = g.Run()
	saveAllGains(pers, controllers)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

// InitializeObjects creates the loops of the current configuration, restores
// their gains if requested and registers the statistics collectors.
func InitializeObjects(pers persistence.Persistence) ([]controller.LoopController, error) {
	loops, err := control_loop.CreateLoops(configuration.CurrentConfig.Loops)
	if err != nil {
		return nil, err
	}

	var controllers []controller.LoopController
	for _, loop := range loops {
		if configuration.CurrentConfig.RestoreGains {
			err = controller.RestoreGains(pers, loop)
			if err != nil {
				ui.Warning("Unable to restore gains of loop '%s': %v", loop.GetId(), err)
			}
		}
		controllers = append(controllers, controller.NewLoopController(
			loop,
			configuration.CurrentConfig.TickRate,
			configuration.CurrentConfig.ActionWindowSize,
		))
	}

	if configuration.CurrentConfig.Statistics.Enabled {
		statistics.Register(statistics.NewLoopCollector(loops))
		statistics.Register(statistics.NewControllerCollector(controllers))
	}

	return controllers, nil
}

func saveAllGains(pers persistence.Persistence, controllers []controller.LoopController) {
	for _, c := range controllers {
		err := controller.SaveGains(pers, c.GetLoop())
		if err != nil {
			ui.Error("Unable to save gains of loop '%s': %v", c.GetId(), err)
		}
	}
}
