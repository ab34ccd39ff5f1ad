// cmd/station/run.go
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/tamzrod/inspection-station/internal/app"
	"github.com/tamzrod/inspection-station/internal/config"
	"github.com/tamzrod/inspection-station/internal/events"
	"github.com/tamzrod/inspection-station/internal/inspection"
	"github.com/tamzrod/inspection-station/internal/logging"
	"github.com/tamzrod/inspection-station/internal/poller"
	"github.com/tamzrod/inspection-station/internal/station"
	"github.com/tamzrod/inspection-station/internal/writer"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Serve the PLC: poll the command register, publish the status register",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to station YAML",
				Required: true,
				EnvVars:  []string{"STATION_CONFIG"},
			},
		},
		Action: runAction,
	}
}

func runAction(c *cli.Context) error {
	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if err := config.Validate(cfg); err != nil {
		return cli.Exit("config validation failed: "+err.Error(), 2)
	}
	config.Normalize(cfg)

	log, err := logging.New(cfg.Logging, cfg.Station.Name)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// --------------------
	// Events (optional)
	// --------------------

	var pub events.Publisher = events.Nop{}
	if cfg.MQTT.Enabled {
		mp, err := events.ConnectMQTT(cfg.MQTT, cfg.Station.Name, log.Named("mqtt"))
		if err != nil {
			// events are best-effort; the station still serves the PLC
			log.Warn("mqtt disabled", zap.Error(err))
		} else {
			pub = mp
		}
	}
	recorder := events.NewRecorder(cfg.Station.Name, pub, log.Named("events"))

	// --------------------
	// Core: worker + gateway + lifecycle
	// --------------------

	insp := inspection.NewSimulator(cfg.Station.Seed, log.Named("inspection"))
	core, err := app.NewCore(time.Duration(cfg.Station.IdleTickMs)*time.Millisecond, insp, recorder, log)
	if err != nil {
		return err
	}
	if err := core.Lifecycle.Start(); err != nil {
		return err
	}

	// --------------------
	// PLC side: poller + status writer
	// --------------------

	p, closePoller, err := poller.Build(*cfg)
	if err != nil {
		core.Lifecycle.Stop()
		return cli.Exit("poller build failed: "+err.Error(), 1)
	}
	defer closePoller()

	sw, closeWriter, err := writer.BuildStatusWriter(*cfg)
	if err != nil {
		core.Lifecycle.Stop()
		return cli.Exit("status writer build failed: "+err.Error(), 1)
	}
	defer closeWriter()

	st := station.New(core.Gateway, core, log.Named("station"))
	runner := app.NewRunner(st, sw, log.Named("runner"))

	log.Info("station running",
		zap.String("plc", cfg.PLC.Endpoint),
		zap.String("transport", cfg.PLC.Transport),
		zap.Uint16("command_address", cfg.PLC.CommandAddress),
		zap.Int("poll_interval_ms", cfg.Station.PollIntervalMs),
	)

	app.Serve(ctx, p, runner)

	// --------------------
	// Shutdown
	// --------------------

	log.Info("shutting down")
	core.Lifecycle.Stop()
	if err := recorder.Close(); err != nil {
		log.Warn("event publisher close failed", zap.Error(err))
	}

	stats := core.Worker.Stats()
	log.Info("stopped",
		zap.Uint64("processed", stats.Processed),
		zap.Uint64("dropped", stats.Dropped),
		zap.Uint64("events_dropped", recorder.Dropped()),
	)
	return nil
}
