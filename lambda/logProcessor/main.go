package main

import (
	"context"

	"github.com/m-mizutani/cflogs/pkg/handler"
	"github.com/m-mizutani/cflogs/pkg/processor"
	"github.com/pkg/errors"
)

var logger = handler.Logger

func main() {
	handler.StartLambda(Handler)
}

// Handler is exported for testing
func Handler(ctx context.Context, args handler.Arguments) error {
	records, err := args.DecapKinesisEvent()
	if err != nil {
		return err
	}

	schema, err := args.FieldSchema()
	if err != nil {
		return errors.Wrap(err, "Failed to load field schema")
	}

	dst, err := args.Destination()
	if err != nil {
		return err
	}

	logger.WithField("records", len(records)).Debug("Processing Kinesis records")

	p := processor.New(schema, dst, args.TimestreamService())
	if _, err := p.Process(ctx, records); err != nil {
		return err
	}

	return nil
}
