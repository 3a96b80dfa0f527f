package service

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudfront"
	"github.com/aws/aws-sdk-go/service/kinesisanalytics"
	"github.com/m-mizutani/cflogs/internal/adaptor"
	"github.com/m-mizutani/cflogs/pkg/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const kinesisAnalyticsInputID = "1.1"

// ProvisionService calls control plane APIs for stack bring-up.
type ProvisionService struct {
	newKinesisAnalytics adaptor.KinesisAnalyticsClientFactory
	newCloudFront       adaptor.CloudFrontClientFactory
	region              string
}

// NewProvisionService is constructor of ProvisionService
func NewProvisionService(newKA adaptor.KinesisAnalyticsClientFactory, newCF adaptor.CloudFrontClientFactory, region string) *ProvisionService {
	return &ProvisionService{
		newKinesisAnalytics: newKA,
		newCloudFront:       newCF,
		region:              region,
	}
}

// StartApplication starts the Kinesis Analytics application only if status is READY.
// It returns true if StartApplication was called.
func (x *ProvisionService) StartApplication(name string) (bool, error) {
	client := x.newKinesisAnalytics(x.region)

	desc, err := client.DescribeApplication(&kinesisanalytics.DescribeApplicationInput{
		ApplicationName: aws.String(name),
	})
	if err != nil {
		return false, errors.Wrapf(err, "Failed DescribeApplication: %s", name)
	}

	var status string
	if desc.ApplicationDetail != nil {
		status = aws.StringValue(desc.ApplicationDetail.ApplicationStatus)
	}

	if status != kinesisanalytics.ApplicationStatusReady {
		logger.WithFields(logrus.Fields{
			"application": name,
			"status":      status,
		}).Info("KDA app is not ready")
		return false, nil
	}

	logger.WithField("application", name).Info("Application is ready, starting")
	_, err = client.StartApplication(&kinesisanalytics.StartApplicationInput{
		ApplicationName: aws.String(name),
		InputConfigurations: []*kinesisanalytics.InputConfiguration{
			{
				Id: aws.String(kinesisAnalyticsInputID),
				InputStartingPositionConfiguration: &kinesisanalytics.InputStartingPositionConfiguration{
					InputStartingPosition: aws.String(kinesisanalytics.InputStartingPositionNow),
				},
			},
		},
	})
	if err != nil {
		return false, errors.Wrapf(err, "Failed StartApplication: %s", name)
	}

	return true, nil
}

// CreateRealtimeLogConfig registers CloudFront real-time log configuration with Kinesis
// endpoint and returns ARN of the configuration.
func (x *ProvisionService) CreateRealtimeLogConfig(cfg models.RealtimeLogConfig) (string, error) {
	if len(cfg.Fields) == 0 {
		return "", errors.New("No field for real-time log configuration")
	}

	client := x.newCloudFront(x.region)
	input := &cloudfront.CreateRealtimeLogConfigInput{
		EndPoints: []*cloudfront.EndPoint{
			{
				StreamType: aws.String(models.StreamTypeKinesis),
				KinesisStreamConfig: &cloudfront.KinesisStreamConfig{
					RoleARN:   aws.String(cfg.RoleARN),
					StreamARN: aws.String(cfg.StreamARN),
				},
			},
		},
		Fields:       aws.StringSlice(cfg.Fields),
		Name:         aws.String(cfg.Name),
		SamplingRate: aws.Int64(cfg.SamplingRate),
	}

	logger.WithField("fields", cfg.Fields).Debug("Creating real-time log config")
	output, err := client.CreateRealtimeLogConfig(input)
	if err != nil {
		return "", errors.Wrapf(err, "Failed CreateRealtimeLogConfig: %s", cfg.Name)
	}

	var arn string
	if output.RealtimeLogConfig != nil {
		arn = aws.StringValue(output.RealtimeLogConfig.ARN)
	}
	logger.WithFields(logrus.Fields{"name": cfg.Name, "arn": arn}).Info("Created real-time log config")

	return arn, nil
}
