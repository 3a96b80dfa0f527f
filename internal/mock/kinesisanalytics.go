package mock

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/kinesisanalytics"
	"github.com/m-mizutani/cflogs/internal/adaptor"
)

// KinesisAnalyticsClient is mock of AWS KinesisAnalytics SDK
type KinesisAnalyticsClient struct {
	// Status has application name -> application status
	Status     map[string]string
	StartInput []*kinesisanalytics.StartApplicationInput
	Region     string
}

// NewKinesisAnalyticsClient creates mock KinesisAnalytics client
func NewKinesisAnalyticsClient(region string) adaptor.KinesisAnalyticsClient {
	return &KinesisAnalyticsClient{
		Status: make(map[string]string),
		Region: region,
	}
}

// DescribeApplication of mock returns status in Status
func (x *KinesisAnalyticsClient) DescribeApplication(input *kinesisanalytics.DescribeApplicationInput) (*kinesisanalytics.DescribeApplicationOutput, error) {
	status, ok := x.Status[aws.StringValue(input.ApplicationName)]
	if !ok {
		return nil, fmt.Errorf("%s: %s", kinesisanalytics.ErrCodeResourceNotFoundException, aws.StringValue(input.ApplicationName))
	}

	return &kinesisanalytics.DescribeApplicationOutput{
		ApplicationDetail: &kinesisanalytics.ApplicationDetail{
			ApplicationName:   input.ApplicationName,
			ApplicationStatus: aws.String(status),
		},
	}, nil
}

// StartApplication of mock stores input and changes status to STARTING
func (x *KinesisAnalyticsClient) StartApplication(input *kinesisanalytics.StartApplicationInput) (*kinesisanalytics.StartApplicationOutput, error) {
	name := aws.StringValue(input.ApplicationName)
	if _, ok := x.Status[name]; !ok {
		return nil, fmt.Errorf("%s: %s", kinesisanalytics.ErrCodeResourceNotFoundException, name)
	}

	x.StartInput = append(x.StartInput, input)
	x.Status[name] = kinesisanalytics.ApplicationStatusStarting
	return &kinesisanalytics.StartApplicationOutput{}, nil
}
