package adaptor

import (
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/timestreamwrite"
)

// Recommended Timestream write client configuration:
// https://docs.aws.amazon.com/timestream/latest/developerguide/code-samples.write-client.html
const (
	timestreamMaxRetries     = 10
	timestreamRequestTimeout = 20 * time.Second
	timestreamMaxConnections = 5000
)

// TimestreamClientFactory is interface TimestreamClient constructor
type TimestreamClientFactory func(region string) TimestreamClient

// TimestreamClient is interface of AWS SDK TimestreamWrite
type TimestreamClient interface {
	WriteRecordsWithContext(ctx aws.Context, input *timestreamwrite.WriteRecordsInput, opts ...request.Option) (*timestreamwrite.WriteRecordsOutput, error)
}

// NewTimestreamClient creates actual AWS TimestreamWrite SDK client
func NewTimestreamClient(region string) TimestreamClient {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        timestreamMaxConnections,
		MaxIdleConnsPerHost: timestreamMaxConnections,
		IdleConnTimeout:     90 * time.Second,
	}

	ssn := session.Must(session.NewSession(&aws.Config{
		Region:                  aws.String(region),
		MaxRetries:              aws.Int(timestreamMaxRetries),
		EnableEndpointDiscovery: aws.Bool(true),
		HTTPClient: &http.Client{
			Timeout:   timestreamRequestTimeout,
			Transport: transport,
		},
	}))
	return timestreamwrite.New(ssn)
}
