package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

var gzipMagic = []byte{0x1f, 0x8b}

// input is an opened FASTA source: the decoded stream and the handles
// behind it, innermost last.
type input struct {
	io.Reader
	closers []io.Closer
}

// Close releases every handle and reports the first failure.
func (in *input) Close() error {
	var first error
	for _, c := range in.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openReader opens a FASTA input. "-" reads stdin. Gzip streams, recognized
// by their magic bytes or a .gz name, are decompressed on the fly, so a
// gzipped stdin works too.
func openReader(path string) (io.ReadCloser, error) {
	var raw io.ReadCloser = io.NopCloser(os.Stdin)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		raw = f
	}
	br := bufio.NewReader(raw)
	head, _ := br.Peek(len(gzipMagic))
	if !bytes.Equal(head, gzipMagic) && !strings.HasSuffix(path, ".gz") {
		return &input{Reader: br, closers: []io.Closer{raw}}, nil
	}
	gz, err := gzip.NewReader(br)
	if err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &input{Reader: gz, closers: []io.Closer{gz, raw}}, nil
}
