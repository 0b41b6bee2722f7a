package main

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/beanclass/internal/features"
)

func featuresCmd() *cli.Command {
	var layoutName string

	return &cli.Command{
		Name:    "features",
		Aliases: []string{"fields"},
		Usage:   "List the sixteen features in training order",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "layout",
				Usage:       "input layout to describe (numeric, slider)",
				Value:       features.LayoutNumeric,
				Destination: &layoutName,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			layout, ok := features.LayoutByName(layoutName)
			if !ok {
				return cli.Exit(fmt.Sprintf("error: unknown layout %q", layoutName), 1)
			}
			tw := tabwriter.NewWriter(cmd.Root().Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tFEATURE\tFLAG\tWIDGET\tDEFAULT\tRANGE")
			for i, f := range layout.Fields {
				def := strconv.FormatFloat(f.Default, 'f', -1, 64)
				if f.DefaultLevel != "" {
					def = string(f.DefaultLevel)
				}
				rng := ""
				switch f.Widget {
				case features.WidgetSlider:
					rng = fmt.Sprintf("%g..%g step %g", f.Min, f.Max, f.Step)
				case features.WidgetRadio:
					rng = "Low=0.3 Medium=0.6 High=0.9"
				}
				fmt.Fprintf(tw, "%d\t%s\t--%s\t%s\t%s\t%s\n", i+1, f.Feature, flagName(f.Feature), f.Widget, def, rng)
			}
			return tw.Flush()
		},
	}
}
