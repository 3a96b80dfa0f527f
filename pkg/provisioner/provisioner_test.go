package provisioner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/kinesisanalytics"
	"github.com/m-mizutani/cflogs/internal/adaptor"
	"github.com/m-mizutani/cflogs/internal/mock"
	"github.com/m-mizutani/cflogs/pkg/handler"
	"github.com/m-mizutani/cflogs/pkg/provisioner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClients struct {
	ka *mock.KinesisAnalyticsClient
	cf *mock.CloudFrontClient
}

func newArgs() (handler.Arguments, *testClients) {
	c := &testClients{
		ka: mock.NewKinesisAnalyticsClient("us-east-1").(*mock.KinesisAnalyticsClient),
		cf: mock.NewCloudFrontClient("us-east-1").(*mock.CloudFrontClient),
	}
	args := handler.Arguments{
		EnvVars: handler.EnvVars{
			AwsRegion:   "us-east-1",
			FieldSchema: "../../config/cf_realtime_log_field_mappings.json",
		},
		NewKinesisAnalytics: func(region string) adaptor.KinesisAnalyticsClient { return c.ka },
		NewCloudFront:       func(region string) adaptor.CloudFrontClient { return c.cf },
	}
	return args, c
}

func realtimeLogEvent(rate interface{}) cfn.Event {
	return cfn.Event{
		RequestType:       cfn.RequestCreate,
		ResourceType:      provisioner.ResourceRealtimeLogsConfig,
		LogicalResourceID: "RealtimeLogConfig",
		ResourceProperties: map[string]interface{}{
			"RoleArn":      "arn:aws:iam::123456789012:role/cf-realtime-log",
			"StreamArn":    "arn:aws:kinesis:us-east-1:123456789012:stream/cf-logs",
			"StackName":    "cdn-logs",
			"SamplingRate": rate,
		},
	}
}

func TestStartKinesisAnalytics(t *testing.T) {
	event := cfn.Event{
		RequestType:        cfn.RequestCreate,
		ResourceType:       provisioner.ResourceStartKinesisAnalytics,
		LogicalResourceID:  "StartApp",
		ResourceProperties: map[string]interface{}{"ApplicationName": "cdn-app"},
	}

	t.Run("Start READY application", func(tt *testing.T) {
		args, c := newArgs()
		c.ka.Status["cdn-app"] = kinesisanalytics.ApplicationStatusReady

		id, data, err := provisioner.Handle(context.Background(), args, event)
		require.NoError(tt, err)
		assert.Equal(tt, "StartKinesisAnalytics-StartApp", id)
		assert.Equal(tt, "true", data["Started"])

		require.Equal(tt, 1, len(c.ka.StartInput))
		input := c.ka.StartInput[0]
		require.Equal(tt, 1, len(input.InputConfigurations))
		assert.Equal(tt, "1.1", aws.StringValue(input.InputConfigurations[0].Id))
		assert.Equal(tt, kinesisanalytics.InputStartingPositionNow,
			aws.StringValue(input.InputConfigurations[0].InputStartingPositionConfiguration.InputStartingPosition))
	})

	t.Run("Running application is not started again", func(tt *testing.T) {
		args, c := newArgs()
		c.ka.Status["cdn-app"] = kinesisanalytics.ApplicationStatusRunning

		_, data, err := provisioner.Handle(context.Background(), args, event)
		require.NoError(tt, err)
		assert.Equal(tt, "false", data["Started"])
		assert.Equal(tt, 0, len(c.ka.StartInput))
	})

	t.Run("Unknown application fails", func(tt *testing.T) {
		args, _ := newArgs()
		_, _, err := provisioner.Handle(context.Background(), args, event)
		assert.Error(tt, err)
	})
}

func TestRealtimeLogsConfig(t *testing.T) {
	t.Run("Create config with fields of schema", func(tt *testing.T) {
		args, c := newArgs()

		id, data, err := provisioner.Handle(context.Background(), args, realtimeLogEvent("100"))
		require.NoError(tt, err)
		assert.Equal(tt, "CloudFrontRealTimeLogsConfig-RealtimeLogConfig", id)
		assert.Equal(tt, "arn:aws:cloudfront::123456789012:realtime-log-config/cdn-logs", data["Arn"])

		require.Equal(tt, 1, len(c.cf.Input))
		input := c.cf.Input[0]
		assert.Equal(tt, "cdn-logs", aws.StringValue(input.Name))
		assert.Equal(tt, int64(100), aws.Int64Value(input.SamplingRate))
		fields := aws.StringValueSlice(input.Fields)
		require.Equal(tt, 40, len(fields))
		assert.Equal(tt, "timestamp", fields[0])
		assert.Equal(tt, "sc-bytes", fields[4])
		assert.Equal(tt, "cs-headers-count", fields[39])

		require.Equal(tt, 1, len(input.EndPoints))
		assert.Equal(tt, "Kinesis", aws.StringValue(input.EndPoints[0].StreamType))
		assert.Equal(tt, "arn:aws:kinesis:us-east-1:123456789012:stream/cf-logs",
			aws.StringValue(input.EndPoints[0].KinesisStreamConfig.StreamARN))
	})

	t.Run("Numeric sampling rate", func(tt *testing.T) {
		args, c := newArgs()
		_, _, err := provisioner.Handle(context.Background(), args, realtimeLogEvent(5))
		require.NoError(tt, err)
		require.Equal(tt, 1, len(c.cf.Input))
		assert.Equal(tt, int64(5), aws.Int64Value(c.cf.Input[0].SamplingRate))
	})

	t.Run("Invalid sampling rate", func(tt *testing.T) {
		args, c := newArgs()
		_, _, err := provisioner.Handle(context.Background(), args, realtimeLogEvent("high"))
		assert.Error(tt, err)
		assert.Equal(tt, 0, len(c.cf.Input))
	})

	t.Run("Fields in properties", func(tt *testing.T) {
		args, c := newArgs()
		event := realtimeLogEvent("1")
		event.ResourceProperties["Fields"] = []interface{}{"timestamp", "sc-bytes"}

		_, _, err := provisioner.Handle(context.Background(), args, event)
		require.NoError(tt, err)
		assert.Equal(tt, []string{"timestamp", "sc-bytes"}, aws.StringValueSlice(c.cf.Input[0].Fields))
	})

	t.Run("Control plane error is returned", func(tt *testing.T) {
		args, c := newArgs()
		c.cf.Err = errors.New("RealtimeLogConfigAlreadyExists")

		_, _, err := provisioner.Handle(context.Background(), args, realtimeLogEvent("1"))
		require.Error(tt, err)
		assert.Contains(tt, err.Error(), "RealtimeLogConfigAlreadyExists")
	})
}

func TestNoOp(t *testing.T) {
	t.Run("Delete does nothing", func(tt *testing.T) {
		args, c := newArgs()
		event := realtimeLogEvent("1")
		event.RequestType = cfn.RequestDelete
		event.PhysicalResourceID = "existing-id"

		id, _, err := provisioner.Handle(context.Background(), args, event)
		require.NoError(tt, err)
		assert.Equal(tt, "existing-id", id)
		assert.Equal(tt, 0, len(c.cf.Input))
	})

	t.Run("Unknown resource type does nothing", func(tt *testing.T) {
		args, c := newArgs()
		event := realtimeLogEvent("1")
		event.ResourceType = "Custom::Unknown"

		_, _, err := provisioner.Handle(context.Background(), args, event)
		require.NoError(tt, err)
		assert.Equal(tt, 0, len(c.cf.Input))
		assert.Equal(tt, 0, len(c.ka.StartInput))
	})
}
