package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/beanclass/internal/logger"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "beanclass",
		Usage: "Predict dry bean varieties from morphological measurements",
		Flags: append(loggingFlags(), &cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml (default $XDG_CONFIG_HOME/beanclass/config.yaml)",
			Destination: &configFile,
		}),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := LoadConfig(configFile)
			if err != nil {
				return ctx, err
			}
			applyLoggingConfig(cmd, cfg)
			format, err := logger.ParseFormat(logFormat)
			if err != nil {
				return ctx, cli.Exit(fmt.Sprintf("error: unknown log format %q", logFormat), 1)
			}
			level := logLevel
			if debug {
				level = "debug"
			}
			log := logger.Open(logger.Options{
				Level:  level,
				Format: format,
				Writer: cmd.Root().ErrWriter,
			})
			ctx = withConfig(ctx, cfg)
			return logger.WithContext(ctx, log), nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			serveCmd(),
			predictCmd(),
			featuresCmd(),
			versionCmd(),
		},
	}
}
