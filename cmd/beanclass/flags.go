package main

import (
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/beanclass/internal/artifact"
)

var (
	configFile       string
	artifactsDir     string
	pipelinePath     string
	labelEncoderPath string
	inputName        string
	outputName       string
	ortLibrary       string
	logLevel         string
	logFormat        string
	debug            bool
)

func artifactFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "artifacts-dir",
			Aliases:     []string{"dir"},
			Usage:       "directory holding the pipeline and label encoder",
			Destination: &artifactsDir,
		},
		&cli.StringFlag{
			Name:        "pipeline",
			Usage:       "exported ONNX pipeline",
			Value:       artifact.DefaultPipelineFile,
			Destination: &pipelinePath,
		},
		&cli.StringFlag{
			Name:        "label-encoder",
			Usage:       "exported label encoder classes (JSON)",
			Value:       artifact.DefaultLabelEncoderFile,
			Destination: &labelEncoderPath,
		},
		&cli.StringFlag{
			Name:        "input-name",
			Usage:       "pipeline input node",
			Value:       artifact.DefaultInputName,
			Destination: &inputName,
		},
		&cli.StringFlag{
			Name:        "output-name",
			Usage:       "pipeline label output node",
			Value:       artifact.DefaultOutputName,
			Destination: &outputName,
		},
		&cli.StringFlag{
			Name:        "ort-lib",
			Usage:       "path to the onnxruntime shared library",
			Sources:     cli.EnvVars("ONNXRUNTIME_SHARED_LIBRARY_PATH"),
			Destination: &ortLibrary,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (auto, pretty, json, text)",
			Value:       "auto",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func artifactConfig() artifact.Config {
	return artifact.Config{
		Dir:               artifactsDir,
		PipelinePath:      pipelinePath,
		LabelEncoderPath:  labelEncoderPath,
		InputName:         inputName,
		OutputName:        outputName,
		SharedLibraryPath: ortLibrary,
	}
}
