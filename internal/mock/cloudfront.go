package mock

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudfront"
	"github.com/m-mizutani/cflogs/internal/adaptor"
)

// CloudFrontClient is mock of AWS CloudFront SDK
type CloudFrontClient struct {
	Input  []*cloudfront.CreateRealtimeLogConfigInput
	Err    error
	Region string
}

// NewCloudFrontClient creates mock CloudFront client
func NewCloudFrontClient(region string) adaptor.CloudFrontClient {
	return &CloudFrontClient{Region: region}
}

// CreateRealtimeLogConfig of mock stores input and returns config with dummy ARN
func (x *CloudFrontClient) CreateRealtimeLogConfig(input *cloudfront.CreateRealtimeLogConfigInput) (*cloudfront.CreateRealtimeLogConfigOutput, error) {
	if x.Err != nil {
		return nil, x.Err
	}

	x.Input = append(x.Input, input)
	return &cloudfront.CreateRealtimeLogConfigOutput{
		RealtimeLogConfig: &cloudfront.RealtimeLogConfig{
			ARN:          aws.String(fmt.Sprintf("arn:aws:cloudfront::123456789012:realtime-log-config/%s", aws.StringValue(input.Name))),
			Name:         input.Name,
			EndPoints:    input.EndPoints,
			Fields:       input.Fields,
			SamplingRate: input.SamplingRate,
		},
	}, nil
}
