package models

// FailedBatchQueue is sent after a batch that could not be written is archived to S3.
type FailedBatchQueue struct {
	S3Object S3Object  `json:"s3_object"`
	Table    TableName `json:"table"`
	Count    int       `json:"count"`
	Error    string    `json:"error"`
}
