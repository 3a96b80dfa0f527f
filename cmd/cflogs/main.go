package main

import (
	"io"
	"os"

	"github.com/m-mizutani/cflogs/internal"
	"github.com/m-mizutani/cflogs/pkg/handler"
	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"
)

var logger = internal.Logger

// stdout is replaced in test
var stdout io.Writer = os.Stdout

func newApp(args *handler.Arguments) *cli.App {
	return &cli.App{
		Name:  "cflogs",
		Usage: "CLI utility of CloudFront real-time log pipeline",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "region",
				Aliases:     []string{"r"},
				Usage:       "AWS region",
				EnvVars:     []string{"AWS_REGION"},
				Destination: &args.AwsRegion,
			},
			&cli.StringFlag{
				Name:        "schema",
				Aliases:     []string{"f"},
				Usage:       "Field schema file path or S3 URL",
				EnvVars:     []string{"FIELD_SCHEMA"},
				Value:       handler.DefaultFieldSchema,
				Destination: &args.EnvVars.FieldSchema,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Aliases:     []string{"l"},
				Usage:       "Log level [TRACE|DEBUG|INFO|WARN|ERROR]",
				EnvVars:     []string{"LOG_LEVEL"},
				Destination: &args.LogLevel,
			},
		},
		Before: func(c *cli.Context) error {
			handler.SetLogLevel(args.LogLevel)
			return nil
		},
		Commands: []*cli.Command{
			parseCommand(args),
			loadCommand(args),
			provisionCommand(args),
			dumpFailedCommand(args),
		},
	}
}

func main() {
	logger.SetLevel(logrus.InfoLevel)
	var args handler.Arguments

	if err := newApp(&args).Run(os.Args); err != nil {
		logger.WithError(err).Fatal("Abort")
	}
}
