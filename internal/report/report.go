package report

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/reactor/internal/config"
	"github.com/vango-dev/reactor/internal/errors"
)

// Sink receives a finished report.
type Sink interface {
	// Write stores data at the sink's destination.
	Write(ctx context.Context, data []byte) error

	// String describes the destination.
	String() string
}

// Open returns the sink for dest. An empty dest or "-" writes to standard
// output.
func Open(dest string, s3cfg config.S3Config) (Sink, error) {
	switch {
	case dest == "" || dest == "-":
		return NewWriterSink(os.Stdout, "stdout"), nil
	case strings.HasPrefix(dest, "s3://"):
		bucket, key, err := ParseS3URL(dest)
		if err != nil {
			return nil, err
		}
		return NewS3Sink(s3cfg, bucket, key), nil
	default:
		return &FileSink{Path: dest}, nil
	}
}

// WriterSink writes reports to an io.Writer.
type WriterSink struct {
	w    io.Writer
	name string
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer, name string) *WriterSink {
	return &WriterSink{w: w, name: name}
}

// Write implements Sink.
func (s *WriterSink) Write(_ context.Context, data []byte) error {
	if _, err := s.w.Write(data); err != nil {
		return errors.New("E102").WithDetail("writing to " + s.name).Wrap(err)
	}
	return nil
}

func (s *WriterSink) String() string {
	return s.name
}

// FileSink writes reports to a file, creating parent directories.
type FileSink struct {
	Path string
}

// Write implements Sink.
func (s *FileSink) Write(_ context.Context, data []byte) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.New("E102").WithDetail("creating " + dir).Wrap(err)
		}
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return errors.New("E102").WithDetail("writing " + s.Path).Wrap(err)
	}
	return nil
}

func (s *FileSink) String() string {
	return s.Path
}
