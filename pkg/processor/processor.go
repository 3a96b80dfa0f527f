package processor

import (
	"context"

	"github.com/m-mizutani/cflogs/internal"
	"github.com/m-mizutani/cflogs/internal/transform"
	"github.com/m-mizutani/cflogs/pkg/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger = internal.Logger

// BatchWriter sends one batch to storage backend and returns HTTP status code.
type BatchWriter interface {
	WriteBatch(ctx context.Context, dst models.TableName, points []*models.DataPoint) (int, error)
}

// State of Processor in an invocation
type State int

const (
	Accumulating State = iota
	Flushing
	Done
)

func (x State) String() string {
	switch x {
	case Accumulating:
		return "ACCUMULATING"
	case Flushing:
		return "FLUSHING"
	case Done:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// Processor drives Decoder, Typer, Shaper and BatchWriter for records of one invocation.
// It is not safe for concurrent use.
type Processor struct {
	schema    *models.FieldSchema
	dst       models.TableName
	writer    BatchWriter
	decode    transform.DecodeFunc
	batchSize int

	batch *models.Batch
	state State
	count int
}

// Option configures Processor
type Option func(p *Processor)

// WithBatchSize changes capacity of a batch. It is clamped to models.MaxBatchSize.
func WithBatchSize(size int) Option {
	return func(p *Processor) { p.batchSize = size }
}

// WithDecoder replaces transform.DecodeRecord, e.g. for plain text lines.
func WithDecoder(decode transform.DecodeFunc) Option {
	return func(p *Processor) { p.decode = decode }
}

// New creates Processor
func New(schema *models.FieldSchema, dst models.TableName, writer BatchWriter, options ...Option) *Processor {
	p := &Processor{
		schema:    schema,
		dst:       dst,
		writer:    writer,
		decode:    transform.DecodeRecord,
		batchSize: models.MaxBatchSize,
		state:     Done,
	}

	for _, opt := range options {
		opt(p)
	}

	return p
}

// State returns current state
func (x *Processor) State() State { return x.state }

// ShapeRecord converts one transport payload to DataPoint.
func ShapeRecord(schema *models.FieldSchema, decode transform.DecodeFunc, data []byte) (*models.DataPoint, error) {
	tokens, err := decode(data)
	if err != nil {
		return nil, err
	}

	fields, err := transform.TypeFields(tokens, schema)
	if err != nil {
		return nil, err
	}

	return transform.Shape(fields)
}

// ShapeRecordWithHeaders is same as ShapeRecord, but also returns parsed cs-headers and
// cs-header-names that are not stored as dimensions.
func ShapeRecordWithHeaders(schema *models.FieldSchema, decode transform.DecodeFunc, data []byte) (*models.DataPoint, *transform.RequestHeaders, error) {
	tokens, err := decode(data)
	if err != nil {
		return nil, nil, err
	}

	fields, err := transform.TypeAllFields(tokens, schema)
	if err != nil {
		return nil, nil, err
	}

	hdr := transform.ExtractHeaders(fields)
	transform.StripHeaders(fields)

	point, err := transform.Shape(fields)
	if err != nil {
		return nil, nil, err
	}
	return point, hdr, nil
}

// Process handles records in arrival order and returns number of records sent to writer.
// A full batch is flushed immediately and the last partial batch is flushed at the end.
// The first error stops processing, points already written are not rolled back.
func (x *Processor) Process(ctx context.Context, records [][]byte) (int, error) {
	x.batch = models.NewBatch(x.batchSize)
	x.state = Accumulating
	x.count = 0

	for seq, data := range records {
		point, err := ShapeRecord(x.schema, x.decode, data)
		if err != nil {
			x.state = Done
			return x.count, errors.Wrapf(err, "Failed to process record #%d", seq)
		}

		x.batch.Append(point)
		x.count++

		if x.batch.Full() {
			if err := x.flush(ctx); err != nil {
				return x.count, err
			}
		}
	}

	if x.batch.Len() > 0 {
		if err := x.flush(ctx); err != nil {
			return x.count, err
		}
	}

	x.state = Done
	logger.Infof("Successfully processed %d records", x.count)

	return x.count, nil
}

func (x *Processor) flush(ctx context.Context) error {
	x.state = Flushing

	status, err := x.writer.WriteBatch(ctx, x.dst, x.batch.Points())
	if err != nil {
		x.state = Done
		return errors.Wrapf(err, "Failed to write %d records", x.batch.Len())
	}

	logger.WithFields(logrus.Fields{
		"count":  x.count,
		"status": status,
	}).Info("Wrote records")

	x.batch.Reset()
	x.state = Accumulating
	return nil
}
