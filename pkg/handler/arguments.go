package handler

import (
	"encoding/json"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/m-mizutani/cflogs/internal/adaptor"
	"github.com/m-mizutani/cflogs/internal/service"
	"github.com/m-mizutani/cflogs/pkg/models"
	"github.com/pkg/errors"
)

// Arguments has environment variables, Event record and adaptor
type Arguments struct {
	EnvVars
	Event interface{}

	NewTimestream       adaptor.TimestreamClientFactory       `json:"-"`
	NewS3               adaptor.S3ClientFactory               `json:"-"`
	NewSQS              adaptor.SQSClientFactory              `json:"-"`
	NewKinesisAnalytics adaptor.KinesisAnalyticsClientFactory `json:"-"`
	NewCloudFront       adaptor.CloudFrontClientFactory       `json:"-"`
	NewCloudFormation   adaptor.CloudFormationClientFactory   `json:"-"`
	NewEncoder          adaptor.EncoderFactory                `json:"-"`
	NewDecoder          adaptor.DecoderFactory                `json:"-"`

	// Schema is used instead of loading FieldSchema by EnvVars.FieldSchema if not nil.
	Schema *models.FieldSchema `json:"-"`
}

// EventRecord is decapslated event data (e.g. Body of SQS event)
type EventRecord []byte

// Bind unmarshal event record to object
func (x EventRecord) Bind(ev interface{}) error {
	if err := json.Unmarshal(x, ev); err != nil {
		Logger.WithField("raw", string(x)).Error("json.Unmarshal")
		return errors.Wrap(err, "Failed json.Unmarshal in DecodeEvent")
	}
	return nil
}

// DecapSQSEvent decapslates wrapped body data in SQSEvent
func (x *Arguments) DecapSQSEvent() ([]EventRecord, error) {
	var sqsEvent events.SQSEvent
	if err := x.BindEvent(&sqsEvent); err != nil {
		return nil, err
	}

	var output []EventRecord
	for _, record := range sqsEvent.Records {
		output = append(output, EventRecord(record.Body))
	}

	return output, nil
}

// KinesisEvent is envelope of Lambda event from Kinesis Data Streams. Data is kept as base64
// text, unlike events.KinesisEvent, so that a broken record is reported by the decoder.
type KinesisEvent struct {
	Records []KinesisEventRecord `json:"Records"`
}

// KinesisEventRecord is one record of KinesisEvent
type KinesisEventRecord struct {
	EventSource string `json:"eventSource"`
	Kinesis     struct {
		Data           string `json:"data"`
		PartitionKey   string `json:"partitionKey"`
		SequenceNumber string `json:"sequenceNumber"`
	} `json:"kinesis"`
}

// DecapKinesisEvent returns base64 payloads of Kinesis records in arrival order.
func (x *Arguments) DecapKinesisEvent() ([][]byte, error) {
	var ev KinesisEvent
	if err := x.BindEvent(&ev); err != nil {
		return nil, err
	}

	output := make([][]byte, len(ev.Records))
	for i, record := range ev.Records {
		output[i] = []byte(record.Kinesis.Data)
	}

	return output, nil
}

// BindEvent directly decode event data and unmarshal to ev object.
func (x *Arguments) BindEvent(ev interface{}) error {
	raw, err := json.Marshal(x.Event)
	if err != nil {
		Logger.WithField("event", x.Event).Error("json.Marshal")
		return errors.Wrap(err, "Failed to marshal lambda event in BindEvent")
	}

	if err := json.Unmarshal(raw, ev); err != nil {
		Logger.WithField("raw", string(raw)).Error("json.Unmarshal")
		return errors.Wrap(err, "Failed json.Unmarshal in BindEvent")
	}

	return nil
}

// Destination parses TABLE_NAME
func (x *Arguments) Destination() (models.TableName, error) {
	if x.TableName == "" {
		return models.TableName{}, errors.New("TABLE_NAME is not set")
	}
	return models.ParseTableName(x.TableName)
}

// schemaCache keeps FieldSchema for lifetime of the process (warm Lambda container).
var schemaCache struct {
	sync.Mutex
	location string
	schema   *models.FieldSchema
}

// FieldSchema returns Arguments.Schema or loads it from EnvVars.FieldSchema once per process.
func (x *Arguments) FieldSchema() (*models.FieldSchema, error) {
	if x.Schema != nil {
		return x.Schema, nil
	}

	location := x.EnvVars.FieldSchema
	if location == "" {
		location = DefaultFieldSchema
	}

	schemaCache.Lock()
	defer schemaCache.Unlock()

	if schemaCache.schema != nil && schemaCache.location == location {
		return schemaCache.schema, nil
	}

	schema, err := x.SchemaService().Load(location)
	if err != nil {
		return nil, err
	}

	schemaCache.location = location
	schemaCache.schema = schema
	return schema, nil
}

// S3Service provides service.S3Service with S3 adaptor
func (x *Arguments) S3Service() *service.S3Service {
	return service.NewS3Service(x.newS3())
}

// SQSService provides service.SQSService with SQS adaptor
func (x *Arguments) SQSService() *service.SQSService {
	return service.NewSQSService(x.newSQS())
}

// SchemaService provides FieldSchema loader
func (x *Arguments) SchemaService() *service.SchemaService {
	return service.NewSchemaService(x.S3Service(), x.AwsRegion)
}

// ArchiveService returns nil if FAILED_BATCH_S3_BUCKET is not set.
func (x *Arguments) ArchiveService() *service.ArchiveService {
	if x.FailedBatchS3Bucket == "" {
		return nil
	}

	base := models.NewS3Object(x.AwsRegion, x.FailedBatchS3Bucket, x.FailedBatchS3Prefix)
	return service.NewArchiveService(x.S3Service(), x.SQSService(), x.newEncoder(), base, x.FailedBatchQueueURL)
}

// TimestreamService provides Batch Writer to Amazon Timestream
func (x *Arguments) TimestreamService() *service.TimestreamService {
	return service.NewTimestreamService(x.newTimestream(), x.AwsRegion, x.ArchiveService())
}

// ReplayService provides Batch Writer without archive. It is used to write archived batches
// again, then a failed replay does not create another archive.
func (x *Arguments) ReplayService() *service.TimestreamService {
	return service.NewTimestreamService(x.newTimestream(), x.AwsRegion, nil)
}

// ProvisionService provides control plane actions of Kinesis Data Analytics and CloudFront
func (x *Arguments) ProvisionService() *service.ProvisionService {
	return service.NewProvisionService(x.newKinesisAnalytics(), x.newCloudFront(), x.AwsRegion)
}

// StackService provides CloudFormation stack lookup
func (x *Arguments) StackService() *service.StackService {
	return service.NewStackService(x.newCloudFormation(), x.AwsRegion)
}

// ReadArchive decodes a failed batch archive
func (x *Arguments) ReadArchive(obj models.S3Object) ([]*models.DataPoint, error) {
	return service.ReadArchive(x.S3Service(), x.newDecoder(), obj)
}

func (x *Arguments) newTimestream() adaptor.TimestreamClientFactory {
	if x.NewTimestream != nil {
		return x.NewTimestream
	}
	return adaptor.NewTimestreamClient
}
func (x *Arguments) newS3() adaptor.S3ClientFactory {
	if x.NewS3 != nil {
		return x.NewS3
	}
	return adaptor.NewS3Client
}
func (x *Arguments) newSQS() adaptor.SQSClientFactory {
	if x.NewSQS != nil {
		return x.NewSQS
	}
	return adaptor.NewSQSClient
}
func (x *Arguments) newKinesisAnalytics() adaptor.KinesisAnalyticsClientFactory {
	if x.NewKinesisAnalytics != nil {
		return x.NewKinesisAnalytics
	}
	return adaptor.NewKinesisAnalyticsClient
}
func (x *Arguments) newCloudFront() adaptor.CloudFrontClientFactory {
	if x.NewCloudFront != nil {
		return x.NewCloudFront
	}
	return adaptor.NewCloudFrontClient
}
func (x *Arguments) newCloudFormation() adaptor.CloudFormationClientFactory {
	if x.NewCloudFormation != nil {
		return x.NewCloudFormation
	}
	return adaptor.NewCloudFormationClient
}
func (x *Arguments) newEncoder() adaptor.EncoderFactory {
	if x.NewEncoder != nil {
		return x.NewEncoder
	}
	return adaptor.NewMsgpackEncoder
}
func (x *Arguments) newDecoder() adaptor.DecoderFactory {
	if x.NewDecoder != nil {
		return x.NewDecoder
	}
	return adaptor.NewMsgpackDecoder
}
