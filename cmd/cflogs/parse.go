package main

import (
	"github.com/m-mizutani/cflogs/internal/transform"
	"github.com/m-mizutani/cflogs/pkg/handler"
	"github.com/m-mizutani/cflogs/pkg/models"
	"github.com/m-mizutani/cflogs/pkg/processor"
	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"
)

func parseCommand(args *handler.Arguments) *cli.Command {
	var pretty, headers bool

	return &cli.Command{
		Name:      "parse",
		Usage:     "Shape plain text log lines to data points without writing",
		ArgsUsage: "[FILE...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "pretty",
				Aliases:     []string{"p"},
				Usage:       "Pretty print data points",
				Destination: &pretty,
			},
			&cli.BoolFlag{
				Name:        "headers",
				Usage:       "Output parsed cs-headers and cs-header-names with data points",
				Destination: &headers,
			},
		},
		Action: func(c *cli.Context) error {
			return parseAction(args, c.Args().Slice(), pretty, headers)
		},
	}
}

type pointWithHeaders struct {
	*models.DataPoint
	Headers *transform.RequestHeaders `json:"headers"`
}

func parseAction(args *handler.Arguments, files []string, pretty, withHeaders bool) error {
	schema, err := args.FieldSchema()
	if err != nil {
		return err
	}

	lines, err := readLines(files)
	if err != nil {
		return err
	}

	for i, line := range lines {
		var out interface{}
		if withHeaders {
			point, hdr, err := processor.ShapeRecordWithHeaders(schema, transform.SplitPayload, line)
			if err != nil {
				return errors.Wrapf(err, "Failed to parse line %d", i+1)
			}
			out = &pointWithHeaders{DataPoint: point, Headers: hdr}
		} else {
			point, err := processor.ShapeRecord(schema, transform.SplitPayload, line)
			if err != nil {
				return errors.Wrapf(err, "Failed to parse line %d", i+1)
			}
			out = point
		}

		if err := printValue(stdout, out, pretty); err != nil {
			return err
		}
	}

	return nil
}
