// cmd/station/submit.go
package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/tamzrod/inspection-station/internal/app"
	"github.com/tamzrod/inspection-station/internal/config"
	"github.com/tamzrod/inspection-station/internal/inspection"
	"github.com/tamzrod/inspection-station/internal/logging"
	"github.com/tamzrod/inspection-station/internal/protocol"
)

func submitCommand() *cli.Command {
	return &cli.Command{
		Name:      "submit",
		Usage:     "Run commands against a local worker, no PLC involved",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.IntSliceFlag{
				Name:     "code",
				Usage:    "Command code, repeatable (e.g. --code 4 --code 16)",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "param",
				Usage: "Parameter sent with every command",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "Inspection simulator seed (0 seeds from the clock)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
			},
		},
		Action: submitAction,
	}
}

func submitAction(c *cli.Context) error {
	log, err := logging.New(config.LoggingConfig{Level: c.String("log-level"), Format: "console"}, "")
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer func() { _ = log.Sync() }()

	insp := inspection.NewSimulator(c.Int64("seed"), log.Named("inspection"))
	core, err := app.NewCore(time.Duration(config.DefaultIdleTickMs)*time.Millisecond, insp, nil, log)
	if err != nil {
		return err
	}
	if err := core.Lifecycle.Start(); err != nil {
		return err
	}
	defer core.Lifecycle.Stop()

	param := c.Int("param")
	for _, code := range c.IntSlice("code") {
		e, s := core.Gateway.Submit(code, param)
		log.Debug("submitted", zap.Int("code", code), zap.Int("param", param))

		name := protocol.CommandCode(code).String()
		if _, err := fmt.Fprintf(c.App.Writer, "%-28s -> %s\n", name, protocol.Respond(e, s)); err != nil {
			return err
		}
	}
	return nil
}
