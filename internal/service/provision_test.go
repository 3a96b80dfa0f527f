package service_test

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/kinesisanalytics"
	"github.com/m-mizutani/cflogs/internal/adaptor"
	"github.com/m-mizutani/cflogs/internal/mock"
	"github.com/m-mizutani/cflogs/internal/service"
	"github.com/m-mizutani/cflogs/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvisionService(ka *mock.KinesisAnalyticsClient, cf *mock.CloudFrontClient) *service.ProvisionService {
	return service.NewProvisionService(
		func(region string) adaptor.KinesisAnalyticsClient { return ka },
		func(region string) adaptor.CloudFrontClient { return cf },
		"us-east-1",
	)
}

func TestStartApplication(t *testing.T) {
	t.Run("Start READY application", func(tt *testing.T) {
		ka := mock.NewKinesisAnalyticsClient("us-east-1").(*mock.KinesisAnalyticsClient)
		ka.Status["my-app"] = kinesisanalytics.ApplicationStatusReady
		svc := newProvisionService(ka, nil)

		started, err := svc.StartApplication("my-app")
		require.NoError(tt, err)
		assert.True(tt, started)
		require.Equal(tt, 1, len(ka.StartInput))
		input := ka.StartInput[0]
		require.Equal(tt, 1, len(input.InputConfigurations))
		assert.Equal(tt, "1.1", aws.StringValue(input.InputConfigurations[0].Id))
		assert.Equal(tt, "NOW", aws.StringValue(input.InputConfigurations[0].InputStartingPositionConfiguration.InputStartingPosition))
	})

	t.Run("Skip not READY application", func(tt *testing.T) {
		ka := mock.NewKinesisAnalyticsClient("us-east-1").(*mock.KinesisAnalyticsClient)
		ka.Status["my-app"] = kinesisanalytics.ApplicationStatusRunning
		svc := newProvisionService(ka, nil)

		started, err := svc.StartApplication("my-app")
		require.NoError(tt, err)
		assert.False(tt, started)
		assert.Equal(tt, 0, len(ka.StartInput))
	})

	t.Run("Application not found", func(tt *testing.T) {
		ka := mock.NewKinesisAnalyticsClient("us-east-1").(*mock.KinesisAnalyticsClient)
		svc := newProvisionService(ka, nil)

		_, err := svc.StartApplication("my-app")
		assert.Error(tt, err)
	})
}

func TestCreateRealtimeLogConfig(t *testing.T) {
	cfg := models.RealtimeLogConfig{
		Name:         "my-stack",
		RoleARN:      "arn:aws:iam::123456789012:role/cf-rtl",
		StreamARN:    "arn:aws:kinesis:us-east-1:123456789012:stream/cf-rtl",
		SamplingRate: 50,
		Fields:       []string{"timestamp", "c-ip", "sc-bytes"},
	}

	t.Run("Create config with Kinesis endpoint", func(tt *testing.T) {
		cf := mock.NewCloudFrontClient("us-east-1").(*mock.CloudFrontClient)
		svc := newProvisionService(nil, cf)

		arn, err := svc.CreateRealtimeLogConfig(cfg)
		require.NoError(tt, err)
		assert.Contains(tt, arn, "realtime-log-config/my-stack")

		require.Equal(tt, 1, len(cf.Input))
		input := cf.Input[0]
		assert.Equal(tt, "my-stack", aws.StringValue(input.Name))
		assert.Equal(tt, int64(50), aws.Int64Value(input.SamplingRate))
		assert.Equal(tt, []string{"timestamp", "c-ip", "sc-bytes"}, aws.StringValueSlice(input.Fields))
		require.Equal(tt, 1, len(input.EndPoints))
		assert.Equal(tt, "Kinesis", aws.StringValue(input.EndPoints[0].StreamType))
		assert.Equal(tt, cfg.RoleARN, aws.StringValue(input.EndPoints[0].KinesisStreamConfig.RoleARN))
		assert.Equal(tt, cfg.StreamARN, aws.StringValue(input.EndPoints[0].KinesisStreamConfig.StreamARN))
	})

	t.Run("Error from CloudFront", func(tt *testing.T) {
		cf := mock.NewCloudFrontClient("us-east-1").(*mock.CloudFrontClient)
		cf.Err = errors.New("RealtimeLogConfigAlreadyExists")
		svc := newProvisionService(nil, cf)

		_, err := svc.CreateRealtimeLogConfig(cfg)
		assert.Error(tt, err)
	})

	t.Run("No field", func(tt *testing.T) {
		cf := mock.NewCloudFrontClient("us-east-1").(*mock.CloudFrontClient)
		svc := newProvisionService(nil, cf)

		noField := cfg
		noField.Fields = nil
		_, err := svc.CreateRealtimeLogConfig(noField)
		assert.Error(tt, err)
		assert.Equal(tt, 0, len(cf.Input))
	})
}
