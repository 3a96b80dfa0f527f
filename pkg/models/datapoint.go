package models

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/timestreamwrite"
)

// MaxBatchSize is upper limit of records in one WriteRecords call of Amazon Timestream.
const MaxBatchSize = 100

// MeasureValueType is data type of measure value
type MeasureValueType string

// TimeUnit is granularity of DataPoint.Time
type TimeUnit string

const (
	MeasureValueTypeBigint  MeasureValueType = timestreamwrite.MeasureValueTypeBigint
	MeasureValueTypeDouble  MeasureValueType = timestreamwrite.MeasureValueTypeDouble
	MeasureValueTypeVarchar MeasureValueType = timestreamwrite.MeasureValueTypeVarchar

	TimeUnitSeconds      TimeUnit = timestreamwrite.TimeUnitSeconds
	TimeUnitMilliseconds TimeUnit = timestreamwrite.TimeUnitMilliseconds
)

// Dimension is name/value pair of metadata of DataPoint
type Dimension struct {
	Name  string `json:"name" msgpack:"name"`
	Value string `json:"value" msgpack:"value"`
}

// DataPoint is a shaped time series record to be written to Timestream.
type DataPoint struct {
	Dimensions       []Dimension      `json:"dimensions" msgpack:"dimensions"`
	MeasureName      string           `json:"measure_name" msgpack:"measure_name"`
	MeasureValue     string           `json:"measure_value" msgpack:"measure_value"`
	MeasureValueType MeasureValueType `json:"measure_value_type" msgpack:"measure_value_type"`
	Time             string           `json:"time" msgpack:"time"`
	TimeUnit         TimeUnit         `json:"time_unit" msgpack:"time_unit"`
}

// Record converts DataPoint to Timestream SDK record.
func (x *DataPoint) Record() *timestreamwrite.Record {
	dims := make([]*timestreamwrite.Dimension, len(x.Dimensions))
	for i, d := range x.Dimensions {
		dims[i] = &timestreamwrite.Dimension{
			Name:  aws.String(d.Name),
			Value: aws.String(d.Value),
		}
	}

	return &timestreamwrite.Record{
		Dimensions:       dims,
		MeasureName:      aws.String(x.MeasureName),
		MeasureValue:     aws.String(x.MeasureValue),
		MeasureValueType: aws.String(string(x.MeasureValueType)),
		Time:             aws.String(x.Time),
		TimeUnit:         aws.String(string(x.TimeUnit)),
	}
}

// LookupDimension returns value of the dimension.
func (x *DataPoint) LookupDimension(name string) (string, bool) {
	for _, d := range x.Dimensions {
		if d.Name == name {
			return d.Value, true
		}
	}
	return "", false
}

// Batch is capacity bounded sequence of DataPoint. Points are owned by Batch until Reset.
type Batch struct {
	points   []*DataPoint
	capacity int
}

// NewBatch creates empty Batch. capacity is clamped to (0, MaxBatchSize].
func NewBatch(capacity int) *Batch {
	if capacity <= 0 || MaxBatchSize < capacity {
		capacity = MaxBatchSize
	}

	return &Batch{
		points:   make([]*DataPoint, 0, capacity),
		capacity: capacity,
	}
}

// Append adds a point to tail of the batch
func (x *Batch) Append(p *DataPoint) { x.points = append(x.points, p) }

// Full returns true if the batch reached capacity
func (x *Batch) Full() bool { return len(x.points) >= x.capacity }

// Len returns number of points
func (x *Batch) Len() int { return len(x.points) }

// Cap returns capacity of the batch
func (x *Batch) Cap() int { return x.capacity }

// Points returns points in append order.
func (x *Batch) Points() []*DataPoint { return x.points }

// Reset drops all points. Slice returned by Points before Reset is not reused.
func (x *Batch) Reset() { x.points = make([]*DataPoint, 0, x.capacity) }
