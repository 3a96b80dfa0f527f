package service_test

import (
	"testing"

	"github.com/m-mizutani/cflogs/internal/adaptor"
	"github.com/m-mizutani/cflogs/internal/mock"
	"github.com/m-mizutani/cflogs/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTableName(t *testing.T) {
	client := mock.NewCloudFormationClient("us-east-1").(*mock.CloudFormationClient)
	client.AddResource("single", "LogTable", "AWS::Timestream::Table", "cflogs|realtime")
	client.AddResource("single", "LogDB", "AWS::Timestream::Database", "cflogs")
	client.AddResource("multi", "T1", "AWS::Timestream::Table", "a|b")
	client.AddResource("multi", "T2", "AWS::Timestream::Table", "a|c")
	client.AddResource("none", "LogDB", "AWS::Timestream::Database", "cflogs")

	svc := service.NewStackService(func(region string) adaptor.CloudFormationClient { return client }, "us-east-1")

	t.Run("Found", func(tt *testing.T) {
		table, err := svc.LookupTableName("single")
		require.NoError(tt, err)
		assert.Equal(tt, "cflogs", table.Database)
		assert.Equal(tt, "realtime", table.Table)
	})

	t.Run("Multiple tables", func(tt *testing.T) {
		_, err := svc.LookupTableName("multi")
		assert.Error(tt, err)
	})

	t.Run("No table", func(tt *testing.T) {
		_, err := svc.LookupTableName("none")
		assert.Error(tt, err)
	})

	t.Run("No stack", func(tt *testing.T) {
		_, err := svc.LookupTableName("missing")
		assert.Error(tt, err)
	})
}
