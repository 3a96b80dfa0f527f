package mock

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	"github.com/m-mizutani/cflogs/internal/adaptor"
)

// CloudFormationClient is mock of AWS CloudFormation SDK
type CloudFormationClient struct {
	// Stacks has stack name -> resources
	Stacks map[string][]*cloudformation.StackResource
}

// NewCloudFormationClient creates mock CloudFormation client
func NewCloudFormationClient(region string) adaptor.CloudFormationClient {
	return &CloudFormationClient{
		Stacks: make(map[string][]*cloudformation.StackResource),
	}
}

// AddResource registers a stack resource
func (x *CloudFormationClient) AddResource(stackName, logicalID, resourceType, physicalID string) {
	x.Stacks[stackName] = append(x.Stacks[stackName], &cloudformation.StackResource{
		StackName:          aws.String(stackName),
		LogicalResourceId:  aws.String(logicalID),
		ResourceType:       aws.String(resourceType),
		PhysicalResourceId: aws.String(physicalID),
	})
}

// DescribeStackResources of mock returns registered resources
func (x *CloudFormationClient) DescribeStackResources(input *cloudformation.DescribeStackResourcesInput) (*cloudformation.DescribeStackResourcesOutput, error) {
	resources, ok := x.Stacks[aws.StringValue(input.StackName)]
	if !ok {
		return nil, fmt.Errorf("Stack with id %s does not exist", aws.StringValue(input.StackName))
	}

	return &cloudformation.DescribeStackResourcesOutput{StackResources: resources}, nil
}
