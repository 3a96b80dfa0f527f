package models

// StreamTypeKinesis is only supported endpoint type of CloudFront real-time logs
const StreamTypeKinesis = "Kinesis"

// RealtimeLogConfig is parameters of CloudFront real-time log configuration
type RealtimeLogConfig struct {
	Name         string
	RoleARN      string
	StreamARN    string
	SamplingRate int64
	Fields       []string
}
