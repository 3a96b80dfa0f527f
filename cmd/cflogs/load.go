package main

import (
	"github.com/m-mizutani/cflogs/internal/transform"
	"github.com/m-mizutani/cflogs/pkg/handler"
	"github.com/m-mizutani/cflogs/pkg/models"
	"github.com/m-mizutani/cflogs/pkg/processor"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"
)

type loadArguments struct {
	table     string
	stackName string
}

func loadCommand(args *handler.Arguments) *cli.Command {
	var loadArgs loadArguments

	return &cli.Command{
		Name:      "load",
		Usage:     "Write plain text log lines to Amazon Timestream",
		ArgsUsage: "[FILE...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "table",
				Aliases:     []string{"t"},
				Usage:       "Destination table as database|table",
				EnvVars:     []string{"TABLE_NAME"},
				Destination: &loadArgs.table,
			},
			&cli.StringFlag{
				Name:        "stack-name",
				Aliases:     []string{"s"},
				Usage:       "StackName of CloudFormation that has Timestream table",
				Destination: &loadArgs.stackName,
			},
		},
		Action: func(c *cli.Context) error {
			return loadAction(c, args, loadArgs, c.Args().Slice())
		},
	}
}

func lookupTable(args *handler.Arguments, loadArgs loadArguments) (models.TableName, error) {
	switch {
	case loadArgs.table != "":
		return models.ParseTableName(loadArgs.table)
	case loadArgs.stackName != "":
		return args.StackService().LookupTableName(loadArgs.stackName)
	default:
		return models.TableName{}, errors.New("Either of --table or --stack-name is required")
	}
}

func loadAction(c *cli.Context, args *handler.Arguments, loadArgs loadArguments, files []string) error {
	dst, err := lookupTable(args, loadArgs)
	if err != nil {
		return err
	}

	schema, err := args.FieldSchema()
	if err != nil {
		return err
	}

	lines, err := readLines(files)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"database": dst.Database,
		"table":    dst.Table,
		"lines":    len(lines),
	}).Info("Loading log lines")

	p := processor.New(schema, dst, args.TimestreamService(), processor.WithDecoder(transform.SplitPayload))
	_, err = p.Process(c.Context, lines)
	return err
}
