package writers

import (
	"encoding/json"
	"io"

	"lamp/internal/encode"
	"lamp/pkg/api"
)

// docSink buffers targets and encodes one api.DesignV1 document on Close.
type docSink struct {
	doc    api.DesignV1
	encode func(api.DesignV1) error
}

func (s *docSink) Write(r Result) error {
	s.doc.Targets = append(s.doc.Targets, ToAPITarget(r))
	return nil
}

func (s *docSink) Close() error { return s.encode(s.doc) }

func newDoc(opt Options) api.DesignV1 {
	return api.DesignV1{Schema: api.SchemaVersion, Tool: opt.Tool, Version: opt.Version, Targets: []api.TargetV1{}}
}

// jsonlSink streams one api.SetV1 per line.
type jsonlSink struct{ enc *json.Encoder }

func (s *jsonlSink) Write(r Result) error {
	for _, rep := range r.Reports {
		if err := s.enc.Encode(ToAPISet(r.TargetID, rep)); err != nil {
			return err
		}
	}
	return nil
}

func (s *jsonlSink) Close() error { return nil }

func init() {
	DesignWriters.Register("json", func(w io.Writer, opt Options) Sink {
		return &docSink{doc: newDoc(opt), encode: func(d api.DesignV1) error { return encode.JSON(w, d) }}
	})
	DesignWriters.Register("yaml", func(w io.Writer, opt Options) Sink {
		return &docSink{doc: newDoc(opt), encode: func(d api.DesignV1) error { return encode.YAML(w, d) }}
	})
	DesignWriters.Register("jsonl", func(w io.Writer, _ Options) Sink { return &jsonlSink{enc: json.NewEncoder(w)} })
}
