package rest

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// roundTripperFunc adapts a function to http.RoundTripper.
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// transportMiddleware wraps a RoundTripper with additional behavior.
type transportMiddleware func(http.RoundTripper) http.RoundTripper

// chain applies middlewares so the first listed is the outermost.
func chain(rt http.RoundTripper, mws ...transportMiddleware) http.RoundTripper {
	for i := len(mws) - 1; i >= 0; i-- {
		rt = mws[i](rt)
	}
	return rt
}

// withRequestID stamps every outgoing request with an X-Request-ID so
// client and backend logs correlate. An ID already present on the request
// is kept.
func withRequestID() transportMiddleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get("X-Request-ID") == "" {
				r = r.Clone(r.Context())
				r.Header.Set("X-Request-ID", uuid.New().String())
			}
			return next.RoundTrip(r)
		})
	}
}

// withLogging logs one line per request with method, URL, status, and
// duration.
func withLogging(lg *zap.Logger) transportMiddleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)
			elapsed := time.Since(start)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("url", r.URL.String()),
				zap.Duration("duration", elapsed),
				zap.String("request_id", r.Header.Get("X-Request-ID")),
			}
			if err != nil {
				lg.Warn("Request failed", append(fields, zap.Error(err))...)
				return resp, err
			}

			lg.Debug("Request", append(fields, zap.Int("status", resp.StatusCode))...)
			return resp, nil
		})
	}
}
