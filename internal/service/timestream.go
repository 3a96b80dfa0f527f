package service

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/timestreamwrite"
	"github.com/m-mizutani/cflogs/internal/adaptor"
	"github.com/m-mizutani/cflogs/pkg/models"
	"github.com/sirupsen/logrus"
)

// TimestreamService writes batches of DataPoint to Amazon Timestream.
type TimestreamService struct {
	newTimestream adaptor.TimestreamClientFactory
	region        string
	archive       *ArchiveService
	client        adaptor.TimestreamClient
}

// NewTimestreamService is constructor of TimestreamService. archive can be nil.
func NewTimestreamService(newTimestream adaptor.TimestreamClientFactory, region string, archive *ArchiveService) *TimestreamService {
	return &TimestreamService{
		newTimestream: newTimestream,
		region:        region,
		archive:       archive,
	}
}

func (x *TimestreamService) getClient() adaptor.TimestreamClient {
	if x.client == nil {
		x.client = x.newTimestream(x.region)
	}
	return x.client
}

// WriteBatch sends points by one WriteRecords call without common attributes and returns
// HTTP status code. It does not retry. On failure the batch is logged (and archived if
// ArchiveService is available) and BackendWriteError is returned.
func (x *TimestreamService) WriteBatch(ctx context.Context, dst models.TableName, points []*models.DataPoint) (int, error) {
	records := make([]*timestreamwrite.Record, len(points))
	for i, p := range points {
		records[i] = p.Record()
	}

	input := &timestreamwrite.WriteRecordsInput{
		DatabaseName:     aws.String(dst.Database),
		TableName:        aws.String(dst.Table),
		Records:          records,
		CommonAttributes: &timestreamwrite.Record{},
	}

	var status int
	if _, err := x.getClient().WriteRecordsWithContext(ctx, input, captureStatusCode(&status)); err != nil {
		raw, _ := json.Marshal(points)
		logger.WithFields(logrus.Fields{
			"database": dst.Database,
			"table":    dst.Table,
			"status":   status,
			"records":  string(raw),
		}).WithError(err).Error("Failed WriteRecords")

		if x.archive != nil {
			if _, aerr := x.archive.Archive(ctx, dst, points, err); aerr != nil {
				logger.WithError(aerr).Warn("Failed to archive failed batch")
			}
		}

		return status, models.WrapPipelineError(models.BackendWriteError, err,
			"There was an error writing records to Amazon Timestream when inserting records")
	}

	return status, nil
}

func captureStatusCode(code *int) request.Option {
	return func(r *request.Request) {
		r.Handlers.Complete.PushBack(func(r *request.Request) {
			if r.HTTPResponse != nil {
				*code = r.HTTPResponse.StatusCode
			}
		})
	}
}
