package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/cflogs/internal/adaptor"
	"github.com/m-mizutani/cflogs/pkg/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ArchiveService saves batches that could not be written for later investigation.
type ArchiveService struct {
	s3Service  *S3Service
	sqsService *SQSService
	newEncoder adaptor.EncoderFactory
	base       models.S3Object
	queueURL   string

	now func() time.Time
}

// NewArchiveService is constructor of ArchiveService. Archive objects are put under base.
// If queueURL is not empty, FailedBatchQueue is sent after upload.
func NewArchiveService(s3Service *S3Service, sqsService *SQSService, newEncoder adaptor.EncoderFactory, base models.S3Object, queueURL string) *ArchiveService {
	return &ArchiveService{
		s3Service:  s3Service,
		sqsService: sqsService,
		newEncoder: newEncoder,
		base:       base,
		queueURL:   queueURL,
		now:        time.Now,
	}
}

// SetClock replaces time source
func (x *ArchiveService) SetClock(now func() time.Time) { x.now = now }

func (x *ArchiveService) objectKey(ext string) models.S3Object {
	obj := x.base
	ts := x.now().UTC()
	obj.AppendKey(fmt.Sprintf("failed/%s/%s.%s", ts.Format("2006/01/02"), uuid.New().String(), ext))
	return obj
}

// Archive encodes points and uploads them as one S3 object.
func (x *ArchiveService) Archive(ctx context.Context, dst models.TableName, points []*models.DataPoint, cause error) (*models.S3Object, error) {
	var buf bytes.Buffer
	enc := x.newEncoder(&buf)
	for _, p := range points {
		if err := enc.Encode(p); err != nil {
			return nil, errors.Wrap(err, "Failed to encode data point")
		}
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "Failed to close encoder")
	}

	obj := x.objectKey(enc.Ext())
	if err := x.s3Service.PutObject(obj, buf.Bytes(), enc.ContentEncoding()); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"object": obj.URL(),
		"count":  enc.Count(),
	}).Info("Archived failed batch")

	if x.queueURL != "" {
		q := models.FailedBatchQueue{
			S3Object: obj,
			Table:    dst,
			Count:    enc.Count(),
		}
		if cause != nil {
			q.Error = cause.Error()
		}

		if err := x.sqsService.SendSQS(ctx, &q, x.queueURL); err != nil {
			return &obj, errors.Wrap(err, "Failed to send failed batch queue")
		}
	}

	return &obj, nil
}

// ReadArchive downloads an archive object and decodes points in it.
func ReadArchive(s3Service *S3Service, newDecoder adaptor.DecoderFactory, obj models.S3Object) ([]*models.DataPoint, error) {
	raw, err := s3Service.GetObject(obj)
	if err != nil {
		return nil, err
	}

	dec, err := newDecoder(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open archive: %s", obj.URL())
	}

	var points []*models.DataPoint
	for {
		p, err := dec.Decode()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrapf(err, "Failed to decode archive: %s", obj.URL())
		}
		points = append(points, p)
	}

	return points, nil
}
