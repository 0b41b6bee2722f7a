package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/beanclass/internal/artifact"
	"github.com/samcharles93/beanclass/internal/classifier"
	"github.com/samcharles93/beanclass/internal/features"
	"github.com/samcharles93/beanclass/internal/logger"
)

// loadBundle is replaced in tests.
var loadBundle = artifact.Load

func predictCmd() *cli.Command {
	var (
		values           string
		roundnessLevel   string
		compactnessLevel string
		asJSON           bool
	)

	flags := artifactFlags()
	for _, name := range features.Names() {
		flags = append(flags, &cli.FloatFlag{
			Name:  flagName(name),
			Usage: "value for " + name,
		})
	}
	flags = append(flags,
		&cli.StringFlag{
			Name:        "values",
			Usage:       "all sixteen values, comma separated, in training order",
			Destination: &values,
		},
		&cli.StringFlag{
			Name:        "roundness-level",
			Usage:       "set roundness from a level (Low, Medium, High)",
			Destination: &roundnessLevel,
		},
		&cli.StringFlag{
			Name:        "compactness-level",
			Usage:       "set Compactness from a level (Low, Medium, High)",
			Destination: &compactnessLevel,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "print the result as JSON",
			Destination: &asJSON,
		},
	)

	return &cli.Command{
		Name:  "predict",
		Usage: "Predict the bean variety for one specimen",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyArtifactConfig(cmd, configFromContext(ctx))

			x, err := vectorFromFlags(cmd, values, map[string]string{
				"roundness":   roundnessLevel,
				"Compactness": compactnessLevel,
			})
			if err != nil {
				return cli.Exit("error: "+err.Error(), 1)
			}

			bundle, err := loadBundle(artifactConfig())
			if err != nil {
				return cli.Exit("error: "+err.Error(), 1)
			}
			defer func() {
				if err := bundle.Close(); err != nil {
					log.Warn("failed to release artifacts", "error", err)
				}
			}()

			res := classifier.New(bundle.Pipeline, bundle.Labels).Classify(ctx, x)
			log.Debug("prediction", "ok", res.OK(), "label", res.Label)
			return writeResult(cmd, x, res, asJSON)
		},
	}
}

// vectorFromFlags starts from --values (or zeros, like the numeric form),
// then applies per-feature flags and level flags that were set.
func vectorFromFlags(cmd *cli.Command, values string, levels map[string]string) (features.Vector, error) {
	base := make([]float64, features.Len)
	if strings.TrimSpace(values) != "" {
		parsed, err := parseValues(values)
		if err != nil {
			return features.Vector{}, err
		}
		base = parsed
	}
	for i, name := range features.Names() {
		if i < len(base) && cmd.IsSet(flagName(name)) {
			base[i] = cmd.Float(flagName(name))
		}
	}
	for feature, raw := range levels {
		if raw == "" {
			continue
		}
		level, err := features.ParseLevel(raw)
		if err != nil {
			return features.Vector{}, fmt.Errorf("%s: %w", feature, err)
		}
		if i := features.Index(feature); i >= 0 && i < len(base) {
			base[i], _ = level.Value()
		}
	}
	return features.FromValues(base)
}

func parseValues(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		x, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("values: %q is not a number", p)
		}
		out = append(out, x)
	}
	return out, nil
}

// flagName turns a feature name into a kebab-case flag:
// MajorAxisLength -> major-axis-length, ShapeFactor1 -> shape-factor-1.
func flagName(feature string) string {
	var b strings.Builder
	var prev rune
	for i, r := range feature {
		switch {
		case i > 0 && unicode.IsUpper(r):
			b.WriteByte('-')
		case i > 0 && unicode.IsDigit(r) && !unicode.IsDigit(prev):
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
		prev = r
	}
	return b.String()
}

type predictOutput struct {
	Label    string             `json:"label,omitempty"`
	Error    string             `json:"error,omitempty"`
	Features map[string]float64 `json:"features"`
}

func writeResult(cmd *cli.Command, x features.Vector, res classifier.Result, asJSON bool) error {
	w := cmd.Root().Writer
	if asJSON {
		out := predictOutput{Label: res.Label, Features: x.Map()}
		if !res.OK() {
			out.Error = res.Err.Error()
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	} else if res.OK() {
		fmt.Fprintf(w, "Predicted Bean Type: %s\n", res.Label)
	}
	if !res.OK() {
		if errors.Is(res.Err, classifier.ErrPredictionFailure) {
			return cli.Exit("Prediction error: "+res.Err.Error(), 1)
		}
		return cli.Exit("error: "+res.Err.Error(), 1)
	}
	return nil
}
