package adaptor

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/kinesisanalytics"
)

// KinesisAnalyticsClientFactory is interface KinesisAnalyticsClient constructor
type KinesisAnalyticsClientFactory func(region string) KinesisAnalyticsClient

// KinesisAnalyticsClient is interface of AWS SDK KinesisAnalytics
type KinesisAnalyticsClient interface {
	DescribeApplication(*kinesisanalytics.DescribeApplicationInput) (*kinesisanalytics.DescribeApplicationOutput, error)
	StartApplication(*kinesisanalytics.StartApplicationInput) (*kinesisanalytics.StartApplicationOutput, error)
}

// NewKinesisAnalyticsClient creates actual AWS KinesisAnalytics SDK client
func NewKinesisAnalyticsClient(region string) KinesisAnalyticsClient {
	ssn := session.Must(session.NewSession(&aws.Config{Region: aws.String(region)}))
	return kinesisanalytics.New(ssn)
}
