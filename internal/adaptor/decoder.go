package adaptor

import (
	"compress/gzip"
	"io"

	"github.com/m-mizutani/cflogs/pkg/models"
	"github.com/vmihailenco/msgpack/v5"
)

// DecoderFactory is constructor of Decoder for failed batch archive.
type DecoderFactory func(r io.Reader) (Decoder, error)

// Decoder reads DataPoints from archive. Decode returns io.EOF after the last point.
type Decoder interface {
	Decode() (*models.DataPoint, error)
}

type archiveDecoder struct {
	dec *msgpack.Decoder
}

// NewMsgpackDecoder reads archive written by NewMsgpackEncoder
func NewMsgpackDecoder(r io.Reader) (Decoder, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &archiveDecoder{dec: msgpack.NewDecoder(gr)}, nil
}

func (x *archiveDecoder) Decode() (*models.DataPoint, error) {
	var p models.DataPoint
	if err := x.dec.Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
