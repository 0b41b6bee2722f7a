package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/beanclass/internal/api"
	"github.com/samcharles93/beanclass/internal/classifier"
	"github.com/samcharles93/beanclass/internal/logger"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		cacheSize   int64
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the classifier forms and JSON API",
		Flags: append(artifactFlags(),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8501",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			&cli.Int64Flag{
				Name:        "cache-size",
				Usage:       "number of distinct feature vectors to memoize (0 disables)",
				Value:       256,
				Destination: &cacheSize,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyServeConfig(cmd, configFromContext(ctx), &addr, &cacheSize)

			bundle, err := loadBundle(artifactConfig())
			if err != nil {
				return cli.Exit("error: "+err.Error(), 1)
			}
			defer func() {
				if err := bundle.Close(); err != nil {
					log.Warn("failed to release artifacts", "error", err)
				}
			}()
			log.Info("artifacts loaded",
				"pipeline", bundle.PipelinePath,
				"label_encoder", bundle.LabelsPath,
				"classes", bundle.Labels.Known(),
			)

			c := classifier.New(bundle.Pipeline, bundle.Labels, classifier.WithMemo(int(cacheSize)))
			server := api.NewServer(c, bundle.Labels.Known(), log.With("component", "api"))
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)

			log.Info("starting server", "address", addr)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
