package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/m-mizutani/cflogs/internal"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Logger is common logger gateway
var Logger = internal.Logger

// Handler has main logic of the lambda function
type Handler func(ctx context.Context, args Arguments) error

// CustomResourceHandler handles CloudFormation custom resource request
type CustomResourceHandler func(ctx context.Context, args Arguments, event cfn.Event) (physicalResourceID string, data map[string]interface{}, err error)

func setup() {
	Logger.SetLevel(logrus.InfoLevel)
	Logger.SetFormatter(&logrus.JSONFormatter{})
}

func bindArguments() (Arguments, error) {
	var args Arguments
	if err := args.BindEnvVars(); err != nil {
		return args, err
	}

	SetLogLevel(args.LogLevel)
	internal.InitErrorHandler(args.SentryDSN, args.SentryEnv)
	return args, nil
}

// StartLambda initialize AWS Lambda and invokes handler
func StartLambda(handler Handler) {
	setup()

	lambda.Start(func(ctx context.Context, event interface{}) error {
		defer internal.FlushError()

		args, err := bindArguments()
		if err != nil {
			internal.HandleError(err)
			return err
		}

		Logger.WithFields(logrus.Fields{"args": args, "event": event}).Debug("Start handler")
		args.Event = event

		if err := handler(ctx, args); err != nil {
			Logger.WithFields(logrus.Fields{"args": args}).Error("Failed Handler")
			err = errors.Wrap(err, "Failed Handler")
			internal.HandleError(err)
			return err
		}

		return nil
	})
}

// StartCustomResource initialize AWS Lambda for CloudFormation custom resource. Result is
// sent to ResponseURL of the event by cfn.LambdaWrap.
func StartCustomResource(handler CustomResourceHandler) {
	setup()

	lambda.Start(cfn.LambdaWrap(func(ctx context.Context, event cfn.Event) (string, map[string]interface{}, error) {
		defer internal.FlushError()

		args, err := bindArguments()
		if err != nil {
			internal.HandleError(err)
			return "", nil, err
		}

		Logger.WithFields(logrus.Fields{"args": args, "event": event}).Debug("Start custom resource handler")
		args.Event = event

		id, data, err := handler(ctx, args, event)
		if err != nil {
			err = errors.Wrapf(err, "Failed %s of %s", event.RequestType, event.ResourceType)
			internal.HandleError(err)
			return id, data, err
		}

		return id, data, nil
	}))
}

// SetLogLevel changes level of Logger if level is not empty
func SetLogLevel(level string) {
	if level != "" {
		internal.SetLogLevel(level)
	}
}
