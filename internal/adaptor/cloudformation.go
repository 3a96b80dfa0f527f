package adaptor

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudformation"
)

// CloudFormationClientFactory is interface CloudFormationClient constructor
type CloudFormationClientFactory func(region string) CloudFormationClient

// CloudFormationClient is interface of AWS SDK CloudFormation
type CloudFormationClient interface {
	DescribeStackResources(*cloudformation.DescribeStackResourcesInput) (*cloudformation.DescribeStackResourcesOutput, error)
}

// NewCloudFormationClient creates actual AWS CloudFormation SDK client
func NewCloudFormationClient(region string) CloudFormationClient {
	ssn := session.Must(session.NewSession(&aws.Config{Region: aws.String(region)}))
	return cloudformation.New(ssn)
}
