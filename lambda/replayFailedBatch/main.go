package main

import (
	"context"

	"github.com/m-mizutani/cflogs/pkg/handler"
	"github.com/m-mizutani/cflogs/pkg/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger = handler.Logger

func main() {
	handler.StartLambda(Handler)
}

// Handler is exported for testing
func Handler(ctx context.Context, args handler.Arguments) error {
	records, err := args.DecapSQSEvent()
	if err != nil {
		return err
	}

	for _, record := range records {
		var q models.FailedBatchQueue
		if err := record.Bind(&q); err != nil {
			return err
		}

		logger.WithField("queue", q).Info("Replay failed batch")

		if err := replay(ctx, args, &q); err != nil {
			return errors.Wrapf(err, "Failed to replay %s", q.S3Object.URL())
		}
	}

	return nil
}

func replay(ctx context.Context, args handler.Arguments, q *models.FailedBatchQueue) error {
	points, err := args.ReadArchive(q.S3Object)
	if err != nil {
		return err
	}

	writer := args.ReplayService()
	batch := models.NewBatch(models.MaxBatchSize)
	for i, p := range points {
		batch.Append(p)
		if !batch.Full() && i < len(points)-1 {
			continue
		}

		status, err := writer.WriteBatch(ctx, q.Table, batch.Points())
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"count":  i + 1,
			"status": status,
		}).Info("Replayed records")
		batch.Reset()
	}

	return nil
}
