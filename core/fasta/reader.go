// core/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"lamp-core/seq"
)

// Record is a raw FASTA record. Header is the full header line without '>'.
type Record struct {
	ID     string
	Header string
	Seq    []byte
}

// ScanCtx parses FASTA from r and calls emit once per record.
// Cancellation via ctx is honored between lines. Return a non-nil error
// from emit to stop early.
func ScanCtx(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		rec     Record
		started bool
	)
	flush := func() error {
		if !started {
			return nil
		}
		return emit(rec)
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == ';' {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			hdr := string(bytes.TrimSpace(line[1:]))
			rec = Record{ID: parseHeaderID(line[1:]), Header: hdr}
			started = true
			continue
		}
		if !started {
			// headerless input: treat as a single anonymous record
			rec = Record{ID: "seq1", Header: "seq1"}
			started = true
		}
		rec.Seq = append(rec.Seq, line...)
	}
	if err := sc.Err(); err != nil && err != io.EOF {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// ForEachSequence opens path (gzip and "-" for stdin supported) and calls
// fn with every record as a validated sequence. It returns the first error
// from the input or from fn. An input without records is an error.
func ForEachSequence(ctx context.Context, path string, fn func(seq.Sequence) error) error {
	rc, err := openReader(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	n := 0
	err = ScanCtx(ctx, rc, func(r Record) error {
		s, err := seq.New(r.ID, string(r.Seq))
		if err != nil {
			return err
		}
		n++
		return fn(s)
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: no FASTA records", path)
	}
	return nil
}

// ReadSequencesCtx returns every record of path as a validated sequence.
func ReadSequencesCtx(ctx context.Context, path string) ([]seq.Sequence, error) {
	var out []seq.Sequence
	err := ForEachSequence(ctx, path, func(s seq.Sequence) error {
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
