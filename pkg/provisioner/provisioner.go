package provisioner

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/m-mizutani/cflogs/internal"
	"github.com/m-mizutani/cflogs/pkg/handler"
	"github.com/m-mizutani/cflogs/pkg/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger = internal.Logger

// Resource types handled by the custom resource function
const (
	ResourceStartKinesisAnalytics = "Custom::StartKinesisAnalytics"
	ResourceRealtimeLogsConfig    = "Custom::CloudFrontRealTimeLogsConfig"
)

type startAppProperties struct {
	ApplicationName string `json:"ApplicationName"`
}

type realtimeLogProperties struct {
	RoleArn      string      `json:"RoleArn"`
	StreamArn    string      `json:"StreamArn"`
	StackName    string      `json:"StackName"`
	SamplingRate json.Number `json:"SamplingRate"`
	Fields       []string    `json:"Fields,omitempty"`
}

func bindProperties(event cfn.Event, v interface{}) error {
	raw, err := json.Marshal(event.ResourceProperties)
	if err != nil {
		return errors.Wrap(err, "Failed to marshal ResourceProperties")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrapf(err, "Invalid ResourceProperties of %s", event.ResourceType)
	}
	return nil
}

// PhysicalResourceID keeps ID given by CloudFormation, or generates stable ID from resource
// type and logical ID.
func PhysicalResourceID(event cfn.Event) string {
	if event.PhysicalResourceID != "" {
		return event.PhysicalResourceID
	}
	return fmt.Sprintf("%s-%s", strings.TrimPrefix(event.ResourceType, "Custom::"), event.LogicalResourceID)
}

// Handle dispatches custom resource request. Create and Update run the provisioning action,
// Delete and unknown resource types do nothing.
func Handle(ctx context.Context, args handler.Arguments, event cfn.Event) (string, map[string]interface{}, error) {
	id := PhysicalResourceID(event)

	logger.WithFields(logrus.Fields{
		"requestType":  event.RequestType,
		"resourceType": event.ResourceType,
		"logicalID":    event.LogicalResourceID,
	}).Info("Received custom resource request")

	if event.RequestType == cfn.RequestDelete {
		return id, nil, nil
	}

	switch event.ResourceType {
	case ResourceStartKinesisAnalytics:
		data, err := startKinesisAnalytics(args, event)
		return id, data, err

	case ResourceRealtimeLogsConfig:
		data, err := createRealtimeLogsConfig(args, event)
		return id, data, err

	default:
		logger.WithField("resourceType", event.ResourceType).Warn("Unsupported resource type, ignored")
		return id, nil, nil
	}
}

func startKinesisAnalytics(args handler.Arguments, event cfn.Event) (map[string]interface{}, error) {
	var props startAppProperties
	if err := bindProperties(event, &props); err != nil {
		return nil, err
	}
	if props.ApplicationName == "" {
		return nil, errors.New("ApplicationName is required")
	}

	started, err := args.ProvisionService().StartApplication(props.ApplicationName)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"ApplicationName": props.ApplicationName,
		"Started":         strconv.FormatBool(started),
	}, nil
}

func createRealtimeLogsConfig(args handler.Arguments, event cfn.Event) (map[string]interface{}, error) {
	var props realtimeLogProperties
	if err := bindProperties(event, &props); err != nil {
		return nil, err
	}

	rate, err := props.SamplingRate.Int64()
	if err != nil {
		return nil, errors.Wrapf(err, "Invalid SamplingRate: '%s'", props.SamplingRate)
	}

	fields := props.Fields
	if len(fields) == 0 {
		schema, err := args.FieldSchema()
		if err != nil {
			return nil, err
		}
		fields = schema.Names()
	}

	arn, err := args.ProvisionService().CreateRealtimeLogConfig(models.RealtimeLogConfig{
		Name:         props.StackName,
		RoleARN:      props.RoleArn,
		StreamARN:    props.StreamArn,
		SamplingRate: rate,
		Fields:       fields,
	})
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{"Arn": arn}, nil
}
