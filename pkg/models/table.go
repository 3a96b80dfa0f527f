package models

import (
	"fmt"
	"strings"
)

// tableNameSeparator is used by CloudFormation for Ref of AWS::Timestream::Table.
// https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-timestream-table.html
const tableNameSeparator = "|"

// TableName is destination of WriteRecords
type TableName struct {
	Database string `json:"database"`
	Table    string `json:"table"`
}

// ParseTableName parses "DATABASE|TABLE" format.
func ParseTableName(s string) (TableName, error) {
	parts := strings.Split(s, tableNameSeparator)
	if len(parts) != 2 {
		return TableName{}, fmt.Errorf("Invalid table name format, 'database|table' is required: '%s'", s)
	}
	if parts[0] == "" || parts[1] == "" {
		return TableName{}, fmt.Errorf("Database and table must not be empty: '%s'", s)
	}

	return TableName{Database: parts[0], Table: parts[1]}, nil
}

func (x TableName) String() string {
	return x.Database + tableNameSeparator + x.Table
}
