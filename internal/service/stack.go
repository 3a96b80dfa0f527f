package service

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	"github.com/m-mizutani/cflogs/internal/adaptor"
	"github.com/m-mizutani/cflogs/pkg/models"
	"github.com/pkg/errors"
)

const timestreamTableResourceType = "AWS::Timestream::Table"

// StackService looks up resources deployed by CloudFormation
type StackService struct {
	newCloudFormation adaptor.CloudFormationClientFactory
	region            string
}

// NewStackService is constructor of StackService
func NewStackService(newCFn adaptor.CloudFormationClientFactory, region string) *StackService {
	return &StackService{
		newCloudFormation: newCFn,
		region:            region,
	}
}

// DescribeStack returns resources of the stack with logical ID as key.
func (x *StackService) DescribeStack(stackName string) (map[string]*cloudformation.StackResource, error) {
	client := x.newCloudFormation(x.region)

	input := &cloudformation.DescribeStackResourcesInput{
		StackName: aws.String(stackName),
	}

	output, err := client.DescribeStackResources(input)
	if err != nil {
		return nil, errors.Wrapf(err, "Fail to DescribeStackResources for %v", stackName)
	}

	resources := map[string]*cloudformation.StackResource{}
	for i := range output.StackResources {
		rsc := output.StackResources[i]
		resources[aws.StringValue(rsc.LogicalResourceId)] = rsc
	}

	return resources, nil
}

// LookupTableName finds a Timestream table in the stack. Physical ID of the table is "database|table".
func (x *StackService) LookupTableName(stackName string) (models.TableName, error) {
	resources, err := x.DescribeStack(stackName)
	if err != nil {
		return models.TableName{}, err
	}

	var found []string
	for _, rsc := range resources {
		if aws.StringValue(rsc.ResourceType) == timestreamTableResourceType {
			found = append(found, aws.StringValue(rsc.PhysicalResourceId))
		}
	}

	switch len(found) {
	case 0:
		return models.TableName{}, errors.Errorf("No %s in stack %s", timestreamTableResourceType, stackName)
	case 1:
		return models.ParseTableName(found[0])
	default:
		return models.TableName{}, errors.Errorf("Multiple %s in stack %s: %v", timestreamTableResourceType, stackName, found)
	}
}
