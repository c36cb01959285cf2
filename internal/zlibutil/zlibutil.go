// Package zlibutil contains methods to compress and decompress data
// stored in the odb
package zlibutil

import (
	"bytes"
	"errors"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/nj301365/version-control-system-mygit/internal/errutil"
	"golang.org/x/xerrors"
)

const (
	// initialRatio is the expansion ratio used to size the first
	// output buffer
	initialRatio = 10
	// minBufferSize is the smallest output buffer we allocate
	minBufferSize = 512
)

// Compress returns the data zlib compressed
func Compress(data []byte) (out []byte, err error) {
	buf := new(bytes.Buffer)
	zw := zlib.NewWriter(buf)
	if _, err = zw.Write(data); err != nil {
		zw.Close() //nolint:errcheck // it failed anyway
		return nil, xerrors.Errorf("could not zlib the data: %w", err)
	}
	// Close() flushes the stream, the data are incomplete until it's
	// called
	if err = zw.Close(); err != nil {
		return nil, xerrors.Errorf("could not flush the zlib stream: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress returns the uncompressed version of data.
// The size of the output is unknown in advance so the output buffer
// starts at 10x the size of the input and doubles every time it gets
// full, until the end of the stream is reached.
// ErrCorruptObject is returned if the stream is not valid
func Decompress(data []byte) (out []byte, err error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, xerrors.Errorf("could not read zlib header (%s): %w", err.Error(), ginternals.ErrCorruptObject)
	}
	defer errutil.Close(zr, &err)

	size := len(data) * initialRatio
	if size < minBufferSize {
		size = minBufferSize
	}
	buf := make([]byte, size)
	n := 0
	for {
		if n == len(buf) {
			grown := make([]byte, len(buf)*2)
			copy(grown, buf[:n])
			buf = grown
		}

		read, readErr := zr.Read(buf[n:])
		n += read
		if errors.Is(readErr, io.EOF) {
			return buf[:n], nil
		}
		if readErr != nil {
			return nil, xerrors.Errorf("could not inflate data (%s): %w", readErr.Error(), ginternals.ErrCorruptObject)
		}
	}
}
