package sinks

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"pick-and-place/server/logging"
)

// JSON emits newline-delimited structured events, optionally compressed
// with zstd for long-running diagnostic captures.
type JSON struct {
	mu        sync.Mutex
	writer    *bufio.Writer
	encoder   *json.Encoder
	zst       *zstd.Encoder
	autoFlush bool
	stopFlush chan struct{}
	flushOnce sync.Once
}

// NewJSON constructs a JSON sink writing to the provided io.Writer.
func NewJSON(w io.Writer, flushInterval time.Duration) *JSON {
	if w == nil {
		w = io.Discard
	}
	buf := bufio.NewWriter(w)
	sink := &JSON{
		writer:    buf,
		encoder:   json.NewEncoder(buf),
		autoFlush: flushInterval <= 0,
		stopFlush: make(chan struct{}),
	}
	if flushInterval > 0 {
		go sink.periodicFlush(flushInterval)
	}
	return sink
}

// NewJSONZstd constructs a JSON sink that zstd-compresses its output.
func NewJSONZstd(w io.Writer, flushInterval time.Duration) (*JSON, error) {
	if w == nil {
		w = io.Discard
	}
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewWriter(enc)
	sink := &JSON{
		writer:    buf,
		encoder:   json.NewEncoder(buf),
		zst:       enc,
		autoFlush: flushInterval <= 0,
		stopFlush: make(chan struct{}),
	}
	if flushInterval > 0 {
		go sink.periodicFlush(flushInterval)
	}
	return sink, nil
}

// Write satisfies logging.Sink.
func (s *JSON) Write(event logging.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wire := map[string]any{
		"type":     event.Type,
		"tick":     event.Tick,
		"time":     event.Time.Format(time.RFC3339Nano),
		"severity": event.Severity,
		"category": event.Category,
		"actor":    event.Actor,
		"targets":  event.Targets,
		"payload":  event.Payload,
		"extra":    event.Extra,
		"traceId":  event.TraceID,
	}
	if err := s.encoder.Encode(wire); err != nil {
		return err
	}
	if s.autoFlush {
		return s.writer.Flush()
	}
	return nil
}

// Close flushes buffers and finalizes the compressed stream if present.
func (s *JSON) Close(context.Context) error {
	s.flushOnce.Do(func() { close(s.stopFlush) })
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writer.Flush(); err != nil {
		return err
	}
	if s.zst != nil {
		return s.zst.Close()
	}
	return nil
}

func (s *JSON) periodicFlush(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopFlush:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.writer.Flush()
			s.mu.Unlock()
		}
	}
}
