package models

import (
	"errors"
	"fmt"
	"strings"
)

const s3URLScheme = "s3://"

type S3Object struct {
	Region string `json:"region"`
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

func NewS3Object(region, bucket, key string) S3Object {
	return S3Object{
		Region: region,
		Bucket: bucket,
		Key:    key,
	}
}

// IsS3URL checks s3:// scheme
func IsS3URL(s string) bool {
	return strings.HasPrefix(s, s3URLScheme)
}

// ParseS3URL converts "s3://bucket/key" to S3Object. Region is not included in the URL.
func ParseS3URL(url, region string) (*S3Object, error) {
	if !IsS3URL(url) {
		return nil, fmt.Errorf("Not S3 URL: %s", url)
	}

	parts := strings.SplitN(strings.TrimPrefix(url, s3URLScheme), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, errors.New("Invalid S3 URL (bucket and key are required)")
	}

	obj := NewS3Object(region, parts[0], parts[1])
	return &obj, nil
}

func (x *S3Object) AppendKey(append string) {
	if x.Key == "" || strings.HasSuffix(x.Key, "/") {
		x.Key += append
	} else {
		x.Key += "/" + append
	}
}

// URL returns s3://bucket/key
func (x *S3Object) URL() string {
	return fmt.Sprintf("%s%s/%s", s3URLScheme, x.Bucket, x.Key)
}

func (x *S3Object) Encode() string {
	return fmt.Sprintf("%s@%s:%s", x.Bucket, x.Region, x.Key)
}

func DecodeS3Object(raw string) (*S3Object, error) {
	p1 := strings.Split(raw, "@")
	if len(p1) != 2 {
		return nil, errors.New("Invalid S3 path encode (@ is required)")
	}

	p2 := strings.Split(p1[1], ":")
	if len(p2) < 2 {
		return nil, errors.New("Invalid S3 path encode (: is required)")
	}

	return &S3Object{
		Bucket: p1[0],
		Region: p2[0],
		Key:    strings.Join(p2[1:], ":"),
	}, nil
}
