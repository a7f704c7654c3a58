package core

import (
	"time"

	"go.uber.org/zap"
)

// MetricsRecorder receives operation telemetry from the services.
type MetricsRecorder interface {
	ObserveOperation(op string, d time.Duration, err error)
	ObserveViolation(rule, severity string)
	ObserveMeetingURL(provider string)
}

type noopMetrics struct{}

func (noopMetrics) ObserveOperation(string, time.Duration, error) {}
func (noopMetrics) ObserveViolation(string, string)               {}
func (noopMetrics) ObserveMeetingURL(string)                      {}

// Option customizes a service at construction time.
type Option func(*options)

type options struct {
	logger  *zap.Logger
	metrics MetricsRecorder
	now     func() time.Time
}

func buildOptions(opts []Option) options {
	o := options{
		logger:  zap.NewNop(),
		metrics: noopMetrics{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the structured logger. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
