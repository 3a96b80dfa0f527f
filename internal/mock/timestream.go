package mock

import (
	"net/http"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/timestreamwrite"
	"github.com/m-mizutani/cflogs/internal/adaptor"
)

// TimestreamClient is mock of AWS TimestreamWrite SDK. It stores all WriteRecords input.
type TimestreamClient struct {
	Input  []*timestreamwrite.WriteRecordsInput
	Region string

	// WriteError is called before storing input. Returned error is used as result of WriteRecords.
	WriteError func(seq int, input *timestreamwrite.WriteRecordsInput) error
	// StatusCode is HTTP status code of response, 200 by default.
	StatusCode int
}

// NewTimestreamClient creates mock Timestream client
func NewTimestreamClient(region string) adaptor.TimestreamClient {
	return &TimestreamClient{Region: region}
}

// WriteRecordsWithContext of mock stores input and runs Complete handlers added by options.
func (x *TimestreamClient) WriteRecordsWithContext(ctx aws.Context, input *timestreamwrite.WriteRecordsInput, opts ...request.Option) (*timestreamwrite.WriteRecordsOutput, error) {
	status := x.StatusCode
	if status == 0 {
		status = http.StatusOK
	}

	var err error
	if x.WriteError != nil {
		err = x.WriteError(len(x.Input), input)
	}

	req := &request.Request{
		HTTPResponse: &http.Response{StatusCode: status},
		Error:        err,
	}
	req.ApplyOptions(opts...)
	req.Handlers.Complete.Run(req)

	if err != nil {
		return nil, err
	}

	x.Input = append(x.Input, input)
	return &timestreamwrite.WriteRecordsOutput{}, nil
}

// Records returns all records written in order.
func (x *TimestreamClient) Records() []*timestreamwrite.Record {
	var records []*timestreamwrite.Record
	for _, input := range x.Input {
		records = append(records, input.Records...)
	}
	return records
}
