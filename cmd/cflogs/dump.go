package main

import (
	"context"

	"github.com/m-mizutani/cflogs/pkg/handler"
	"github.com/m-mizutani/cflogs/pkg/models"
	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentDownload = 4

func dumpFailedCommand(args *handler.Arguments) *cli.Command {
	var pretty bool

	return &cli.Command{
		Name:      "dump-failed",
		Usage:     "Print data points in failed batch archives",
		ArgsUsage: "S3URL...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "pretty",
				Aliases:     []string{"p"},
				Destination: &pretty,
			},
		},
		Action: func(c *cli.Context) error {
			return dumpFailedAction(c.Context, args, c.Args().Slice(), pretty)
		},
	}
}

// dumpFailedAction downloads archives concurrently and prints them in argument order.
func dumpFailedAction(ctx context.Context, args *handler.Arguments, urls []string, pretty bool) error {
	if len(urls) == 0 {
		return errors.New("No archive URL")
	}

	objects := make([]*models.S3Object, len(urls))
	for i, url := range urls {
		obj, err := models.ParseS3URL(url, args.AwsRegion)
		if err != nil {
			return err
		}
		objects[i] = obj
	}

	results := make([][]*models.DataPoint, len(objects))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDownload)
	for i := range objects {
		i := i
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			points, err := args.ReadArchive(*objects[i])
			if err != nil {
				return err
			}
			results[i] = points
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, points := range results {
		for _, p := range points {
			if err := printValue(stdout, p, pretty); err != nil {
				return err
			}
		}
	}

	return nil
}
