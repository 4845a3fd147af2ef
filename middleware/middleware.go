// Package middleware validates HTTP request bodies with skema schemas.
package middleware

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reoring/skema"
	"github.com/reoring/skema/dsl"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-Id"

// Decoded is a validated and bound request body.
type Decoded[T any] struct {
	Value     T
	RequestID string
	Format    string // json, yaml or cbor
}

// ctxKeyDecoded is a typed context key for storing Decoded[T].
// Using a generic struct type ensures uniqueness per T.
type ctxKeyDecoded[T any] struct{}

// ContextWithDecoded attaches a Decoded[T] to the context.
func ContextWithDecoded[T any](ctx context.Context, d Decoded[T]) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded[T]{}, d)
}

// DecodedFromContext retrieves a Decoded[T] from context.
func DecodedFromContext[T any](ctx context.Context) (Decoded[T], bool) {
	v, ok := ctx.Value(ctxKeyDecoded[T]{}).(Decoded[T])
	return v, ok
}

// DefaultParseOpt returns the defaults for HTTP boundaries: duplicate keys
// are errors and input size and nesting are bounded.
func DefaultParseOpt() skema.ParseOpt {
	return skema.ParseOpt{
		Strictness: skema.Strictness{OnDuplicateKey: skema.Error},
		MaxDepth:   128,
		MaxBytes:   8 << 20,
	}
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(requestID string, issues skema.Issues) map[string]any {
	return map[string]any{"request_id": requestID, "issues": issues}
}

// Options configures ValidateBody.
type Options struct {
	// ParseOpt replaces DefaultParseOpt when non-nil.
	ParseOpt *skema.ParseOpt
	Logger   *zap.Logger
}

// ValidateBody decodes the request body according to its Content-Type
// (JSON unless YAML or CBOR is declared), validates it against s and binds
// it into T. On success the next handler finds the result through
// DecodedFromContext[T]. Validation failures are answered with 400 (413 for
// oversized bodies) and an ErrorPayload.
func ValidateBody[T any](s dsl.Schema, o Options) func(http.Handler) http.Handler {
	opt := DefaultParseOpt()
	if o.ParseOpt != nil {
		opt = *o.ParseOpt
	}
	logger := o.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := r.Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, rid)
			log := logger.With(zap.String("request_id", rid), zap.String("path", r.URL.Path))

			src, err := bodySource(r, opt.MaxBytes)
			if err != nil {
				status := http.StatusBadRequest
				var ume unsupportedMediaError
				if errors.As(err, &ume) {
					status = http.StatusUnsupportedMediaType
				}
				log.Info("unreadable body", zap.Int("status", status), zap.Error(err))
				writeJSON(w, status, map[string]any{"request_id": rid, "error": err.Error()})
				return
			}

			v, err := skema.Typed[T](r.Context(), s, src, opt)
			if err != nil {
				if iss, ok := skema.AsIssues(err); ok {
					status := http.StatusBadRequest
					if len(iss) > 0 && iss[0].Code == skema.CodeTruncated {
						status = http.StatusRequestEntityTooLarge
					}
					log.Info("request rejected", zap.String("format", src.Format()), zap.Strings("codes", iss.Codes()))
					writeJSON(w, status, ErrorPayload(rid, iss))
					return
				}
				log.Error("cannot bind validated body", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]any{"request_id": rid, "error": "internal error"})
				return
			}

			log.Debug("request validated", zap.String("format", src.Format()))
			d := Decoded[T]{Value: v, RequestID: rid, Format: src.Format()}
			next.ServeHTTP(w, r.WithContext(ContextWithDecoded(r.Context(), d)))
		})
	}
}

type unsupportedMediaError string

func (e unsupportedMediaError) Error() string { return "unsupported content type " + string(e) }

func bodySource(r *http.Request, maxBytes int64) (skema.Source, error) {
	mt := "application/json"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		parsed, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, unsupportedMediaError(ct)
		}
		mt = parsed
	}
	var wrap func([]byte) skema.Source
	switch mt {
	case "application/json", "text/json":
		wrap = skema.JSONBytes
	case "application/yaml", "application/x-yaml", "text/yaml":
		wrap = skema.YAMLBytes
	case "application/cbor":
		wrap = skema.CBORBytes
	default:
		return nil, unsupportedMediaError(mt)
	}
	b, err := readBody(r.Body, maxBytes)
	if err != nil {
		return nil, err
	}
	return wrap(b), nil
}

// readBody reads at most one byte past maxBytes so the decoder can still
// report truncation.
func readBody(body io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes > 0 {
		body = io.LimitReader(body, maxBytes+1)
	}
	return io.ReadAll(body)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
