package main

import (
	"fmt"

	"github.com/m-mizutani/cflogs/pkg/handler"
	"github.com/m-mizutani/cflogs/pkg/models"
	cli "github.com/urfave/cli/v2"
)

func provisionCommand(args *handler.Arguments) *cli.Command {
	return &cli.Command{
		Name:  "provision",
		Usage: "Run provisioning actions of custom resources directly",
		Subcommands: []*cli.Command{
			startAppCommand(args),
			realtimeLogCommand(args),
		},
	}
}

func startAppCommand(args *handler.Arguments) *cli.Command {
	var name string

	return &cli.Command{
		Name:  "start-app",
		Usage: "Start Kinesis Data Analytics application if it is READY",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "Application name",
				Required:    true,
				Destination: &name,
			},
		},
		Action: func(c *cli.Context) error {
			started, err := args.ProvisionService().StartApplication(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "application: %s, started: %v\n", name, started)
			return nil
		},
	}
}

func realtimeLogCommand(args *handler.Arguments) *cli.Command {
	var cfg models.RealtimeLogConfig
	var fields cli.StringSlice

	return &cli.Command{
		Name:  "realtime-log",
		Usage: "Create CloudFront real-time log configuration",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "Configuration name",
				Required:    true,
				Destination: &cfg.Name,
			},
			&cli.StringFlag{
				Name:        "role-arn",
				Usage:       "IAM role ARN for CloudFront to put records",
				Required:    true,
				Destination: &cfg.RoleARN,
			},
			&cli.StringFlag{
				Name:        "stream-arn",
				Usage:       "Kinesis data stream ARN",
				Required:    true,
				Destination: &cfg.StreamARN,
			},
			&cli.Int64Flag{
				Name:        "sampling-rate",
				Usage:       "Sampling rate (1-100)",
				Value:       100,
				Destination: &cfg.SamplingRate,
			},
			&cli.StringSliceFlag{
				Name:        "field",
				Usage:       "Log fields. Fields of schema are used if not given",
				Destination: &fields,
			},
		},
		Action: func(c *cli.Context) error {
			cfg.Fields = fields.Value()
			if len(cfg.Fields) == 0 {
				schema, err := args.FieldSchema()
				if err != nil {
					return err
				}
				cfg.Fields = schema.Names()
			}

			arn, err := args.ProvisionService().CreateRealtimeLogConfig(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, arn)
			return nil
		},
	}
}
