package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/m-mizutani/cflogs/internal/adaptor"
	"github.com/m-mizutani/cflogs/internal/mock"
	"github.com/m-mizutani/cflogs/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendSQS(t *testing.T) {
	var region string
	client := mock.NewSQSClient("dummy").(*mock.SQSClient)
	svc := service.NewSQSService(func(r string) adaptor.SQSClient {
		region = r
		return client
	})

	type testMessage struct {
		Name string
	}

	t.Run("Send message with region in URL", func(tt *testing.T) {
		url := "https://sqs.eu-west-2.amazonaws.com/123456789012/test-queue"
		require.NoError(tt, svc.SendSQS(context.Background(), &testMessage{Name: "Aozaki"}, url))
		assert.Equal(tt, "eu-west-2", region)
		require.Equal(tt, 1, len(client.Input))
		assert.Equal(tt, url, aws.StringValue(client.Input[0].QueueUrl))

		var msg testMessage
		require.NoError(tt, json.Unmarshal([]byte(aws.StringValue(client.Input[0].MessageBody)), &msg))
		assert.Equal(tt, "Aozaki", msg.Name)
	})

	t.Run("Legacy queue URL", func(tt *testing.T) {
		url := "https://us-west-1.queue.amazonaws.com/123456789012/test-queue"
		require.NoError(tt, svc.SendSQS(context.Background(), &testMessage{Name: "Ryougi"}, url))
		assert.Equal(tt, "us-west-1", region)
	})

	t.Run("Cancelled context", func(tt *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		n := len(client.Input)
		url := "https://sqs.eu-west-2.amazonaws.com/123456789012/test-queue"
		assert.Error(tt, svc.SendSQS(ctx, &testMessage{}, url))
		assert.Equal(tt, n, len(client.Input))
	})

	t.Run("Invalid URL", func(tt *testing.T) {
		assert.Error(tt, svc.SendSQS(context.Background(), &testMessage{}, "test-url"))
		assert.Error(tt, svc.SendSQS(context.Background(), &testMessage{}, "https://example.com/queue"))
	})
}
