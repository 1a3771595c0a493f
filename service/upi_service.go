package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"upi-service/logging"
	"upi-service/monitoring"
	"upi-service/upi"
)

var (
	// ErrInvalidURI is returned for text that does not parse as an absolute URI.
	ErrInvalidURI = errors.New("invalid uri")
	// ErrNotUPI is returned when a URI does not use the upi scheme.
	ErrNotUPI = errors.New("not a upi uri")
)

// UPIService classifies and decodes raw UPI deep links
type UPIService struct {
	tracer trace.Tracer
}

// NewUPIService creates a new UPI service
func NewUPIService(tracer trace.Tracer) *UPIService {
	return &UPIService{
		tracer: tracer,
	}
}

// Classify reports whether raw is a UPI URI
func (s *UPIService) Classify(ctx context.Context, raw string) (bool, error) {
	_, span := s.tracer.Start(ctx, "classify_upi_uri")
	defer span.End()

	u, err := parse(raw)
	if err != nil {
		span.RecordError(err)
		return false, err
	}

	isUPI := upi.IsIntent(&upi.Intent{Data: u})
	span.SetAttributes(attribute.Bool("upi.is_upi", isUPI))
	return isUPI, nil
}

// Decode parses raw, checks its scheme and decodes the payload. A missing
// mandatory field is reported as *upi.Error.
func (s *UPIService) Decode(ctx context.Context, raw string) (*upi.Result, error) {
	ctx, span := s.tracer.Start(ctx, "decode_upi_uri")
	defer span.End()

	logger := logging.WithTraceContext(span)

	u, err := s.parseUPI(raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.recordOutcome(ctx, "rejected", rejectReason(err))
		logger.Warn("Rejected URI", zap.Error(err))
		return nil, err
	}

	res, err := upi.Decode(u)
	if err != nil {
		var decodeErr *upi.Error
		if errors.As(err, &decodeErr) {
			span.SetAttributes(attribute.Int("upi.error_code", int(decodeErr.Code)))
			s.recordOutcome(ctx, "failed", decodeErr.Code.String())
			logger.Info("UPI URI missing mandatory field",
				zap.Stringer("error_code", decodeErr.Code),
				zap.String("host", u.Host),
			)
		}
		span.SetAttributes(attribute.String("upi.status", "failed"))
		return nil, err
	}

	p := res.Payload
	span.SetAttributes(
		attribute.String("upi.status", "success"),
		attribute.String("upi.currency", p.CurrencyCode),
		attribute.Int("upi.extras", len(res.Extras)),
	)

	s.recordOutcome(ctx, "success", "")
	monitoring.ExtrasCount.Record(ctx, int64(len(res.Extras)))
	if p.PayeeAmount != nil {
		monitoring.PayeeAmount.Record(ctx, p.PayeeAmount.InexactFloat64(),
			metric.WithAttributes(attribute.String("currency", p.CurrencyCode)),
		)
	}

	logger.Info("Decoded UPI URI",
		zap.String("currency", p.CurrencyCode),
		zap.Bool("has_amount", p.PayeeAmount != nil),
		zap.Int("extras", len(res.Extras)),
	)

	return res, nil
}

// Diagnose lists every missing mandatory field of raw
func (s *UPIService) Diagnose(ctx context.Context, raw string) ([]upi.ErrorCode, error) {
	_, span := s.tracer.Start(ctx, "diagnose_upi_uri")
	defer span.End()

	u, err := s.parseUPI(raw)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	missing := upi.Diagnose(u)
	span.SetAttributes(attribute.Int("upi.missing_fields", len(missing)))
	return missing, nil
}

func (s *UPIService) parseUPI(raw string) (*url.URL, error) {
	u, err := parse(raw)
	if err != nil {
		return nil, err
	}
	if !upi.IsURI(u) {
		return nil, fmt.Errorf("%w: scheme %q", ErrNotUPI, u.Scheme)
	}
	return u, nil
}

func (s *UPIService) recordOutcome(ctx context.Context, status, reason string) {
	attrs := []attribute.KeyValue{attribute.String("status", status)}
	if reason != "" {
		attrs = append(attrs, attribute.String("error", reason))
	}
	monitoring.DecodeCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func rejectReason(err error) string {
	if errors.Is(err, ErrInvalidURI) {
		return "invalid_uri"
	}
	return "not_upi"
}

// parse requires a scheme, the classifier has nothing to compare otherwise.
func parse(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("%w: missing scheme", ErrInvalidURI)
	}
	return u, nil
}
