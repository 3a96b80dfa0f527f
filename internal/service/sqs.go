package service

import (
	"context"
	"encoding/json"
	"regexp"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/m-mizutani/cflogs/internal/adaptor"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var sqsURLPatterns = []*regexp.Regexp{
	// https://sqs.ap-northeast-1.amazonaws.com/123456789012/test-queue
	regexp.MustCompile(`^https://sqs\.([a-z0-9\-]+)\.amazonaws\.com/`),
	// https://us-west-1.queue.amazonaws.com/123456789012/test-queue
	regexp.MustCompile(`^https://([a-z0-9\-]+)\.queue\.amazonaws\.com/`),
}

func sqsURLToRegion(url string) (string, error) {
	for _, ptn := range sqsURLPatterns {
		if group := ptn.FindStringSubmatch(url); len(group) == 2 {
			return group[1], nil
		}
	}
	return "", errors.Errorf("Unsupported SQS URL syntax: %s", url)
}

// SQSService is accessor to SQS
type SQSService struct {
	newSQS adaptor.SQSClientFactory
}

// NewSQSService is constructor of SQSService
func NewSQSService(newSQS adaptor.SQSClientFactory) *SQSService {
	return &SQSService{
		newSQS: newSQS,
	}
}

// SendSQS marshals msg to JSON and sends it to the queue. Region is extracted from url.
func (x *SQSService) SendSQS(ctx context.Context, msg interface{}, url string) error {
	region, err := sqsURLToRegion(url)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrapf(err, "Failed to marshal message: %v", msg)
	}

	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(url),
		MessageBody: aws.String(string(raw)),
	}
	resp, err := x.newSQS(region).SendMessageWithContext(ctx, input)
	if err != nil {
		return errors.Wrapf(err, "Failed to send SQS message to %s", url)
	}

	logger.WithFields(logrus.Fields{
		"url":       url,
		"messageId": aws.StringValue(resp.MessageId),
	}).Trace("Sent SQS message")

	return nil
}
