// SPDX-License-Identifier: Apache-2.0

package scgc

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/wundergraph/go-scgc"

// Stride is the distance in bytes between two candidate pointers during a
// conservative scan.
type Stride int

const (
	// StrideByte considers a word starting at every byte offset. It finds
	// unaligned pointers but is slower and retains more garbage.
	StrideByte Stride = 1
	// StrideWord considers only pointer-aligned words. This is the default.
	StrideWord Stride = Stride(WordSize)
)

type config struct {
	logger      *slog.Logger
	tracer      trace.Tracer
	stride      Stride
	clearOnFree bool
	acquirer    MemoryAcquirer
}

func defaultConfig() config {
	return config{
		logger: slog.New(slog.DiscardHandler),
		tracer: otel.Tracer(tracerName),
		stride: StrideWord,
	}
}

func (c *config) validate(capacity int) error {
	var errs []error
	if capacity <= 0 {
		errs = append(errs, fmt.Errorf("capacity must be positive, got %d", capacity))
	} else if uint64(capacity/RecordSize) > math.MaxUint32 {
		// Record slots are indexed by uint32 in the free-slot bitmap.
		errs = append(errs, fmt.Errorf("capacity %d exceeds the addressable record count", capacity))
	}
	if c.stride != StrideByte && c.stride != StrideWord {
		errs = append(errs, fmt.Errorf("scan stride must be %d or %d, got %d", StrideByte, StrideWord, c.stride))
	}
	if c.logger == nil {
		errs = append(errs, errors.New("logger must not be nil"))
	}
	if c.tracer == nil {
		errs = append(errs, errors.New("tracer must not be nil"))
	}
	return errors.Join(errs...)
}

// Option represents a configuration option for a Collector.
type Option func(*config)

// WithLogger sets the structured logger that receives collector events.
// By default events are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithTracer sets the tracer used for collection spans. By default the
// global OpenTelemetry tracer provider is used.
func WithTracer(t trace.Tracer) Option {
	return func(c *config) {
		c.tracer = t
	}
}

// WithScanStride sets the conservative scan stride.
func WithScanStride(s Stride) Option {
	return func(c *config) {
		c.stride = s
	}
}

// WithClearOnFree zeroes every block when it is reclaimed.
func WithClearOnFree(enabled bool) Option {
	return func(c *config) {
		c.clearOnFree = enabled
	}
}

// WithMemoryAcquirer makes the collector reserve its capacity from the given
// acquirer before mapping the arena. The reservation is returned on Close.
func WithMemoryAcquirer(a MemoryAcquirer) Option {
	return func(c *config) {
		c.acquirer = a
	}
}
