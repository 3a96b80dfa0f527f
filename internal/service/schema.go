package service

import (
	"io/ioutil"

	"github.com/m-mizutani/cflogs/pkg/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// SchemaService loads FieldSchema from local file or S3 object.
type SchemaService struct {
	s3Service *S3Service
	region    string
}

// NewSchemaService is constructor of SchemaService. region is used for S3 location.
func NewSchemaService(s3Service *S3Service, region string) *SchemaService {
	return &SchemaService{
		s3Service: s3Service,
		region:    region,
	}
}

// Load reads field mapping from location (file path or s3://bucket/key).
func (x *SchemaService) Load(location string) (*models.FieldSchema, error) {
	var raw []byte

	if models.IsS3URL(location) {
		obj, err := models.ParseS3URL(location, x.region)
		if err != nil {
			return nil, err
		}

		raw, err = x.s3Service.GetObject(*obj)
		if err != nil {
			return nil, errors.Wrap(err, "Failed to download field schema")
		}
	} else {
		data, err := ioutil.ReadFile(location)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to read field schema: %s", location)
		}
		raw = data
	}

	schema, err := models.ParseFieldSchema(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "Invalid field schema in %s", location)
	}

	logger.WithFields(logrus.Fields{
		"location": location,
		"fields":   schema.Names(),
	}).Debug("Loaded field schema")

	return schema, nil
}
