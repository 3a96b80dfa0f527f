package handler

import "github.com/Netflix/go-env"

// DefaultFieldSchema is path of field mapping deployed with Lambda function
const DefaultFieldSchema = "./config/cf_realtime_log_field_mappings.json"

// EnvVars has all environment variables that should be given to Lambda function
type EnvVars struct {
	// From arguments
	TableName   string `env:"TABLE_NAME"`
	FieldSchema string `env:"FIELD_SCHEMA"`
	SentryDSN   string `env:"SENTRY_DSN"`
	SentryEnv   string `env:"SENTRY_ENVIRONMENT"`
	LogLevel    string `env:"LOG_LEVEL"`

	// From resource
	FailedBatchS3Bucket string `env:"FAILED_BATCH_S3_BUCKET"`
	FailedBatchS3Prefix string `env:"FAILED_BATCH_S3_PREFIX"`
	FailedBatchQueueURL string `env:"FAILED_BATCH_QUEUE_URL"`

	// From AWS Lambda
	AwsRegion string `env:"AWS_REGION"`
}

// BindEnvVars loads environments variables and set them to EnvVars
func (x *EnvVars) BindEnvVars() error {
	if _, err := env.UnmarshalFromEnviron(x); err != nil {
		Logger.WithError(err).Error("Failed UnmarshalFromEviron")
		return err
	}

	if x.FieldSchema == "" {
		x.FieldSchema = DefaultFieldSchema
	}

	return nil
}
