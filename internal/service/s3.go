package service

import (
	"bytes"
	"io/ioutil"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/m-mizutani/cflogs/internal/adaptor"
	"github.com/m-mizutani/cflogs/pkg/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// S3Service is accessor to S3
type S3Service struct {
	newS3 adaptor.S3ClientFactory
}

// NewS3Service is constructor of S3Service
func NewS3Service(newS3 adaptor.S3ClientFactory) *S3Service {
	return &S3Service{
		newS3: newS3,
	}
}

// GetObject downloads whole object into memory. Expected to be used for small objects.
func (x *S3Service) GetObject(src models.S3Object) ([]byte, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(src.Bucket),
		Key:    aws.String(src.Key),
	}

	client := x.newS3(src.Region)
	output, err := client.GetObject(input)
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			return nil, errors.Wrapf(aerr, "Fail to get object in AWS (%s): %s/%s", aerr.Code(), src.Bucket, src.Key)
		}
		return nil, errors.Wrapf(err, "Fail to get object: %s/%s", src.Bucket, src.Key)
	}
	defer output.Body.Close()

	raw, err := ioutil.ReadAll(output.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "Fail to read object: %s/%s", src.Bucket, src.Key)
	}

	logger.WithFields(logrus.Fields{
		"bucket": src.Bucket,
		"key":    src.Key,
		"size":   len(raw),
	}).Trace("Downloaded S3 object")

	return raw, nil
}

// PutObject uploads data. encoding is set to Content-Encoding if not empty.
func (x *S3Service) PutObject(dst models.S3Object, body []byte, encoding string) error {
	input := &s3.PutObjectInput{
		Body:   bytes.NewReader(body),
		Bucket: aws.String(dst.Bucket),
		Key:    aws.String(dst.Key),
	}
	if encoding != "" {
		input.ContentEncoding = aws.String(encoding)
	}

	client := x.newS3(dst.Region)
	resp, err := client.PutObject(input)
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			return errors.Wrapf(aerr, "Fail to put object in AWS (%s): %s/%s", aerr.Code(), dst.Bucket, dst.Key)
		}
		return errors.Wrapf(err, "Fail to put object: %s/%s", dst.Bucket, dst.Key)
	}

	logger.WithFields(logrus.Fields{
		"resp":   resp,
		"bucket": dst.Bucket,
		"key":    dst.Key,
	}).Debug("Uploaded S3 object")

	return nil
}
