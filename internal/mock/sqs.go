package mock

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/m-mizutani/cflogs/internal/adaptor"
)

// SQSClient is mock of AWS SQS SDK
type SQSClient struct {
	Input  []*sqs.SendMessageInput
	Region string
}

// NewSQSClient creates mock SQS client
func NewSQSClient(region string) adaptor.SQSClient {
	return &SQSClient{
		Region: region,
	}
}

// SendMessageWithContext of mock stores input unless ctx is already done
func (x *SQSClient) SendMessageWithContext(ctx aws.Context, input *sqs.SendMessageInput, opts ...request.Option) (*sqs.SendMessageOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	x.Input = append(x.Input, input)
	return &sqs.SendMessageOutput{MessageId: aws.String("mock-message-id")}, nil
}
