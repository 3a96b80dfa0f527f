package adaptor

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
)

// SQSClientFactory is interface SQSClient constructor
type SQSClientFactory func(region string) SQSClient

// SQSClient sends failed batch notices. The notice is sent within the invocation that
// failed to write, then it is bound to the invocation context.
type SQSClient interface {
	SendMessageWithContext(ctx aws.Context, input *sqs.SendMessageInput, opts ...request.Option) (*sqs.SendMessageOutput, error)
}

// NewSQSClient creates actual AWS SQS SDK client
func NewSQSClient(region string) SQSClient {
	ssn := session.Must(session.NewSession(&aws.Config{Region: aws.String(region)}))
	return sqs.New(ssn)
}
