package adaptor

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudfront"
)

// CloudFrontClientFactory is interface CloudFrontClient constructor
type CloudFrontClientFactory func(region string) CloudFrontClient

// CloudFrontClient is interface of AWS SDK CloudFront
type CloudFrontClient interface {
	CreateRealtimeLogConfig(*cloudfront.CreateRealtimeLogConfigInput) (*cloudfront.CreateRealtimeLogConfigOutput, error)
}

// NewCloudFrontClient creates actual AWS CloudFront SDK client. CloudFront is global service,
// then region is used only for signing.
func NewCloudFrontClient(region string) CloudFrontClient {
	ssn := session.Must(session.NewSession(&aws.Config{Region: aws.String(region)}))
	return cloudfront.New(ssn)
}
