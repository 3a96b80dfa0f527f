package mock

import (
	"bytes"
	"errors"
	"io/ioutil"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/m-mizutani/cflogs/internal/adaptor"
)

// NewS3Client is constructor of S3 Mock. All mock clients share one data store, then use
// unique bucket name in each test.
func NewS3Client(region string) adaptor.S3Client {
	return &S3Client{
		data: mockS3ClientDataStore,
	}
}

// S3Client is on memory S3Client mock
type S3Client struct {
	data map[string]map[string]*s3Entry
}

type s3Entry struct {
	body            []byte
	contentEncoding *string
}

var mockS3ClientDataStore = map[string]map[string]*s3Entry{}

// GetObject of S3Client loads []bytes from memory
func (x *S3Client) GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	bucket, ok := x.data[aws.StringValue(input.Bucket)]
	if !ok {
		return nil, errors.New(s3.ErrCodeNoSuchBucket)
	}
	obj, ok := bucket[aws.StringValue(input.Key)]
	if !ok {
		return nil, errors.New(s3.ErrCodeNoSuchKey)
	}

	return &s3.GetObjectOutput{
		Body:            ioutil.NopCloser(bytes.NewReader(obj.body)),
		ContentEncoding: obj.contentEncoding,
	}, nil
}

// PutObject of S3Client saves []bytes to memory
func (x *S3Client) PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	raw, err := ioutil.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}

	bucket, ok := x.data[aws.StringValue(input.Bucket)]
	if !ok {
		bucket = map[string]*s3Entry{}
		x.data[aws.StringValue(input.Bucket)] = bucket
	}

	bucket[aws.StringValue(input.Key)] = &s3Entry{
		body:            raw,
		contentEncoding: input.ContentEncoding,
	}

	return &s3.PutObjectOutput{}, nil
}

// Keys returns object keys in the bucket
func (x *S3Client) Keys(bucket string) []string {
	var keys []string
	for key := range x.data[bucket] {
		keys = append(keys, key)
	}
	return keys
}
