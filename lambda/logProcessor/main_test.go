package main_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/timestreamwrite"
	"github.com/google/uuid"
	"github.com/m-mizutani/cflogs/internal/adaptor"
	"github.com/m-mizutani/cflogs/internal/mock"
	"github.com/m-mizutani/cflogs/internal/testutil"
	"github.com/m-mizutani/cflogs/pkg/handler"
	"github.com/m-mizutani/cflogs/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logProcessor "github.com/m-mizutani/cflogs/lambda/logProcessor"
)

func newArgs(client *mock.TimestreamClient, event interface{}) handler.Arguments {
	return handler.Arguments{
		EnvVars: handler.EnvVars{
			TableName:   "cdn|realtime_logs",
			FieldSchema: "../../config/cf_realtime_log_field_mappings.json",
			AwsRegion:   "us-east-1",
		},
		Event:         event,
		NewTimestream: func(region string) adaptor.TimestreamClient { return client },
		NewS3:         mock.NewS3Client,
		NewSQS:        mock.NewSQSClient,
	}
}

func TestLogProcessor(t *testing.T) {
	t.Run("Write Kinesis records to Timestream", func(tt *testing.T) {
		client := &mock.TimestreamClient{}
		event := testutil.EncapByKinesis(testutil.LogLines(150)...)

		require.NoError(tt, logProcessor.Handler(context.Background(), newArgs(client, event)))
		require.Equal(tt, 2, len(client.Input))
		assert.Equal(tt, 100, len(client.Input[0].Records))
		assert.Equal(tt, 50, len(client.Input[1].Records))

		input := client.Input[0]
		assert.Equal(tt, "cdn", aws.StringValue(input.DatabaseName))
		assert.Equal(tt, "realtime_logs", aws.StringValue(input.TableName))

		record := input.Records[0]
		assert.Equal(tt, "sc_bytes", aws.StringValue(record.MeasureName))
		assert.Equal(tt, "0", aws.StringValue(record.MeasureValue))
		assert.Equal(tt, "BIGINT", aws.StringValue(record.MeasureValueType))
		assert.Equal(tt, "1600000000", aws.StringValue(record.Time))
		assert.Equal(tt, "SECONDS", aws.StringValue(record.TimeUnit))
	})

	t.Run("One broken record fails invocation", func(tt *testing.T) {
		client := &mock.TimestreamClient{}
		lines := testutil.LogLines(100)
		lines = append(lines, testutil.LogLine(map[string]string{"sc-bytes": "many"}))

		err := logProcessor.Handler(context.Background(), newArgs(client, testutil.EncapByKinesis(lines...)))
		require.Error(tt, err)
		assert.Equal(tt, models.TypeConversionError, models.KindOf(err))
		assert.Equal(tt, 1, len(client.Input))
	})

	t.Run("Broken base64 fails invocation", func(tt *testing.T) {
		client := &mock.TimestreamClient{}
		err := logProcessor.Handler(context.Background(), newArgs(client, testutil.EncapRawKinesis("***")))
		require.Error(tt, err)
		assert.Equal(tt, models.DecodeError, models.KindOf(err))
	})

	t.Run("Failed batch is archived to S3", func(tt *testing.T) {
		bucket := uuid.New().String()
		client := &mock.TimestreamClient{
			WriteError: func(seq int, input *timestreamwrite.WriteRecordsInput) error {
				return errors.New("RejectedRecordsException")
			},
		}
		args := newArgs(client, testutil.EncapByKinesis(testutil.LogLines(3)...))
		args.FailedBatchS3Bucket = bucket
		args.FailedBatchS3Prefix = "archive/"

		err := logProcessor.Handler(context.Background(), args)
		require.Error(tt, err)
		assert.Equal(tt, models.BackendWriteError, models.KindOf(err))

		keys := mock.NewS3Client("us-east-1").(*mock.S3Client).Keys(bucket)
		require.Equal(tt, 1, len(keys))
		obj := models.NewS3Object("us-east-1", bucket, keys[0])
		points, err := args.ReadArchive(obj)
		require.NoError(tt, err)
		assert.Equal(tt, 3, len(points))
	})

	t.Run("TABLE_NAME without separator fails", func(tt *testing.T) {
		client := &mock.TimestreamClient{}
		args := newArgs(client, testutil.EncapByKinesis(testutil.LogLines(1)...))
		args.TableName = "realtime_logs"

		assert.Error(tt, logProcessor.Handler(context.Background(), args))
		assert.Equal(tt, 0, len(client.Input))
	})
}
