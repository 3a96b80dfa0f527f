package testutil

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"
)

// EncapByKinesis encapslates log lines by events.KinesisEvent and returns it. Data is base64
// encoded when the event is marshaled to JSON, same as an event delivered to Lambda.
func EncapByKinesis(lines ...string) *events.KinesisEvent {
	var ev events.KinesisEvent
	for i, line := range lines {
		ev.Records = append(ev.Records, events.KinesisEventRecord{
			EventSource: "aws:kinesis",
			EventName:   "aws:kinesis:record",
			AwsRegion:   "us-east-1",
			Kinesis: events.KinesisRecord{
				Data:                 []byte(line),
				PartitionKey:         "partition",
				SequenceNumber:       sequenceNumber(i),
				KinesisSchemaVersion: "1.0",
			},
		})
	}
	return &ev
}

// EncapRawKinesis builds a Kinesis event with data fields as they are. It is used to
// inject invalid base64 text.
func EncapRawKinesis(data ...string) map[string]interface{} {
	var records []interface{}
	for i, d := range data {
		records = append(records, map[string]interface{}{
			"eventSource": "aws:kinesis",
			"kinesis": map[string]interface{}{
				"data":           d,
				"sequenceNumber": sequenceNumber(i),
			},
		})
	}
	return map[string]interface{}{"Records": records}
}

// EncodeLines converts log lines to base64 payloads of Kinesis record.
func EncodeLines(lines ...string) [][]byte {
	out := make([][]byte, len(lines))
	for i, line := range lines {
		out[i] = []byte(base64.StdEncoding.EncodeToString([]byte(line)))
	}
	return out
}

func sequenceNumber(i int) string {
	return fmt.Sprintf("49600000000000000000000000000000000000000000000000%06d", i)
}

// EncapBySQS encapslates data by events.SQSEvent and returns it.
func EncapBySQS(data ...interface{}) *events.SQSEvent {
	var ev events.SQSEvent
	for _, d := range data {
		raw, err := json.Marshal(d)
		if err != nil {
			log.Fatalf("Can not marshal: %+v: %v", err, d)
		}
		ev.Records = append(ev.Records, events.SQSMessage{Body: string(raw)})
	}
	return &ev
}
