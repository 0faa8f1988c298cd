package transport

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"storefront/pkg/infrastructure/storage"
)

// bearerRoundTripper attaches the persisted bearer credential, when one
// exists, to every outbound request.
type bearerRoundTripper struct {
	next     http.RoundTripper
	store    storage.Store
	tokenKey string
}

func (rt *bearerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := rt.store.Get(rt.tokenKey)
	if err != nil && !pkgerrors.Is(err, storage.ErrKeyNotFound) {
		log.WithError(err).WithField("key", rt.tokenKey).Warn("failed to read bearer token, sending request without credential")
	}
	if len(token) == 0 {
		return rt.next.RoundTrip(req)
	}

	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+string(token))
	return rt.next.RoundTrip(cloned)
}

// requestIDRoundTripper tags every request for backend log correlation.
type requestIDRoundTripper struct {
	next http.RoundTripper
}

func (rt *requestIDRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.Header.Set("X-Request-ID", uuid.NewString())
	return rt.next.RoundTrip(cloned)
}

type loggingRoundTripper struct {
	next http.RoundTripper
}

func (rt *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	log.WithFields(log.Fields{
		"method": req.Method,
		"url":    req.URL.String(),
	}).Debug("sending request")

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"method": req.Method,
			"url":    req.URL.String(),
		}).Warn("request failed")
		return nil, err
	}

	log.WithFields(log.Fields{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("received response")
	return resp, nil
}

type tracingRoundTripper struct {
	next http.RoundTripper
}

func (rt *tracingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	tracer := otel.Tracer("storefront/transport")
	ctx, span := tracer.Start(req.Context(), req.Method+" "+req.URL.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
		),
	)
	defer span.End()

	resp, err := rt.next.RoundTrip(req.Clone(ctx))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	return resp, nil
}
