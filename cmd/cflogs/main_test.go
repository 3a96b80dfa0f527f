package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/google/uuid"
	"github.com/m-mizutani/cflogs/internal/adaptor"
	"github.com/m-mizutani/cflogs/internal/mock"
	"github.com/m-mizutani/cflogs/internal/service"
	"github.com/m-mizutani/cflogs/internal/testutil"
	"github.com/m-mizutani/cflogs/internal/transform"
	"github.com/m-mizutani/cflogs/pkg/handler"
	"github.com/m-mizutani/cflogs/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schemaPath = "../../config/cf_realtime_log_field_mappings.json"

func writeLogFile(t *testing.T, lines ...string) string {
	dir, err := ioutil.TempDir("", "cflogs")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	fpath := filepath.Join(dir, "realtime.log")
	require.NoError(t, ioutil.WriteFile(fpath, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return fpath
}

func captureStdout(t *testing.T) *bytes.Buffer {
	buf := &bytes.Buffer{}
	orig := stdout
	stdout = buf
	t.Cleanup(func() { stdout = orig })
	return buf
}

func TestParseCommand(t *testing.T) {
	t.Run("Print data point as JSON per line", func(tt *testing.T) {
		buf := captureStdout(tt)
		fpath := writeLogFile(tt, testutil.LogLines(2)...)

		var args handler.Arguments
		require.NoError(tt, newApp(&args).Run([]string{"cflogs", "-f", schemaPath, "parse", fpath}))

		out := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Equal(tt, 2, len(out))

		var dp models.DataPoint
		require.NoError(tt, json.Unmarshal([]byte(out[1]), &dp))
		assert.Equal(tt, "1", dp.MeasureValue)
		assert.Equal(tt, "1600000000", dp.Time)
	})

	t.Run("Short line fails by SchemaMismatchError", func(tt *testing.T) {
		captureStdout(tt)
		short := strings.Join(strings.Split(testutil.LogLine(nil), "\t")[:5], "\t")
		fpath := writeLogFile(tt, testutil.LogLine(nil), short)

		var args handler.Arguments
		err := newApp(&args).Run([]string{"cflogs", "-f", schemaPath, "parse", fpath})
		require.Error(tt, err)
		assert.Equal(tt, models.SchemaMismatchError, models.KindOf(err))
		assert.Contains(tt, err.Error(), "line 2")
	})

	t.Run("Non numeric timestamp fails by TypeConversionError", func(tt *testing.T) {
		captureStdout(tt)
		fpath := writeLogFile(tt, "a\tb")

		var args handler.Arguments
		err := newApp(&args).Run([]string{"cflogs", "-f", schemaPath, "parse", fpath})
		require.Error(tt, err)
		assert.Equal(tt, models.TypeConversionError, models.KindOf(err))
	})

	t.Run("Print headers with data point", func(tt *testing.T) {
		buf := captureStdout(tt)
		fpath := writeLogFile(tt, testutil.LogLine(nil))

		var args handler.Arguments
		require.NoError(tt, newApp(&args).Run([]string{"cflogs", "-f", schemaPath, "parse", "--headers", fpath}))

		var out struct {
			models.DataPoint
			Headers transform.RequestHeaders `json:"headers"`
		}
		require.NoError(tt, json.Unmarshal(buf.Bytes(), &out))
		assert.Equal(tt, "1234", out.MeasureValue)
		assert.Equal(tt, []transform.Header{
			{Name: "Host", Value: "example.com"},
			{Name: "User-Agent", Value: "curl/7.64.1"},
		}, out.Headers.Headers)
		assert.Equal(tt, []string{"Host", "User-Agent"}, out.Headers.Names)
	})
}

func TestLoadCommand(t *testing.T) {
	t.Run("Load to table given by flag", func(tt *testing.T) {
		fpath := writeLogFile(tt, testutil.LogLines(120)...)
		client := &mock.TimestreamClient{}
		args := handler.Arguments{
			NewTimestream: func(region string) adaptor.TimestreamClient { return client },
		}

		err := newApp(&args).Run([]string{"cflogs", "-r", "us-east-1", "-f", schemaPath, "load", "-t", "cdn|logs", fpath})
		require.NoError(tt, err)
		require.Equal(tt, 2, len(client.Input))
		assert.Equal(tt, "logs", aws.StringValue(client.Input[0].TableName))
		assert.Equal(tt, 20, len(client.Input[1].Records))
	})

	t.Run("Load to table in stack", func(tt *testing.T) {
		fpath := writeLogFile(tt, testutil.LogLines(1)...)
		client := &mock.TimestreamClient{}
		cfn := mock.NewCloudFormationClient("us-east-1").(*mock.CloudFormationClient)
		cfn.AddResource("cdn-stack", "Table", "AWS::Timestream::Table", "cdn_db|cdn_table")

		args := handler.Arguments{
			NewTimestream:     func(region string) adaptor.TimestreamClient { return client },
			NewCloudFormation: func(region string) adaptor.CloudFormationClient { return cfn },
		}

		err := newApp(&args).Run([]string{"cflogs", "-r", "us-east-1", "-f", schemaPath, "load", "-s", "cdn-stack", fpath})
		require.NoError(tt, err)
		require.Equal(tt, 1, len(client.Input))
		assert.Equal(tt, "cdn_db", aws.StringValue(client.Input[0].DatabaseName))
		assert.Equal(tt, "cdn_table", aws.StringValue(client.Input[0].TableName))
	})

	t.Run("Destination is required", func(tt *testing.T) {
		fpath := writeLogFile(tt, testutil.LogLines(1)...)
		var args handler.Arguments
		assert.Error(tt, newApp(&args).Run([]string{"cflogs", "-f", schemaPath, "load", fpath}))
	})
}

func TestProvisionCommand(t *testing.T) {
	buf := captureStdout(t)
	cf := mock.NewCloudFrontClient("us-east-1").(*mock.CloudFrontClient)
	args := handler.Arguments{
		NewCloudFront: func(region string) adaptor.CloudFrontClient { return cf },
	}

	err := newApp(&args).Run([]string{"cflogs", "-r", "us-east-1", "-f", schemaPath,
		"provision", "realtime-log", "-n", "cdn", "--role-arn", "arn:aws:iam::123456789012:role/r",
		"--stream-arn", "arn:aws:kinesis:us-east-1:123456789012:stream/s", "--sampling-rate", "50"})
	require.NoError(t, err)
	require.Equal(t, 1, len(cf.Input))
	assert.Equal(t, int64(50), aws.Int64Value(cf.Input[0].SamplingRate))
	assert.Equal(t, 40, len(cf.Input[0].Fields))
	assert.Contains(t, buf.String(), "realtime-log-config/cdn")
}

func TestDumpFailedCommand(t *testing.T) {
	buf := captureStdout(t)
	bucket := uuid.New().String()
	archive := service.NewArchiveService(service.NewS3Service(mock.NewS3Client), nil,
		adaptor.NewMsgpackEncoder, models.NewS3Object("us-east-1", bucket, "failed-batch/"), "")

	var urls []string
	for _, v := range []string{"11", "22"} {
		obj, err := archive.Archive(context.Background(), models.TableName{Database: "db", Table: "tbl"}, []*models.DataPoint{
			{MeasureName: "sc_bytes", MeasureValue: v, Time: "1600000000"},
		}, nil)
		require.NoError(t, err)
		urls = append(urls, obj.URL())
	}

	args := handler.Arguments{NewS3: mock.NewS3Client}
	require.NoError(t, newApp(&args).Run(append([]string{"cflogs", "-r", "us-east-1", "dump-failed"}, urls...)))

	out := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, 2, len(out))
	var dp models.DataPoint
	require.NoError(t, json.Unmarshal([]byte(out[0]), &dp))
	assert.Equal(t, "11", dp.MeasureValue)
	require.NoError(t, json.Unmarshal([]byte(out[1]), &dp))
	assert.Equal(t, "22", dp.MeasureValue)
}
