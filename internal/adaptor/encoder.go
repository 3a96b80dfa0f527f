package adaptor

import (
	"compress/gzip"
	"io"

	"github.com/m-mizutani/cflogs/pkg/models"
	"github.com/vmihailenco/msgpack/v5"
)

// EncoderFactory is constructor of Encoder for failed batch archive.
type EncoderFactory func(w io.Writer) Encoder

// Encoder writes DataPoints of one failed batch as one archive object.
type Encoder interface {
	Encode(p *models.DataPoint) error
	Close() error
	// Count is number of encoded points
	Count() int
	Ext() string
	ContentEncoding() string
}

type archiveEncoder struct {
	gw    *gzip.Writer
	enc   *msgpack.Encoder
	count int
}

// NewMsgpackEncoder creates archive encoder. Points are written as msgpack stream with
// gzip compression, object extension is "msg.gz".
func NewMsgpackEncoder(w io.Writer) Encoder {
	gw := gzip.NewWriter(w)
	return &archiveEncoder{
		gw:  gw,
		enc: msgpack.NewEncoder(gw),
	}
}

func (x *archiveEncoder) Encode(p *models.DataPoint) error {
	if err := x.enc.Encode(p); err != nil {
		return err
	}
	x.count++
	return nil
}

func (x *archiveEncoder) Close() error            { return x.gw.Close() }
func (x *archiveEncoder) Count() int              { return x.count }
func (x *archiveEncoder) Ext() string             { return "msg.gz" }
func (x *archiveEncoder) ContentEncoding() string { return "gzip" }
