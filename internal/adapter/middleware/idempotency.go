package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"loan-ledger/internal/domain/access"
	"loan-ledger/pkg/id"
)

const (
	HeaderRequestID = "Ax-Request-Id"
	HeaderRequestAt = "Ax-Request-At"

	// how long an in-progress marker blocks retries of the same id
	provisionalLockTTL = 60 * time.Second
	// allowed client/server clock skew for Ax-Request-At
	maxClockSkew = 10 * time.Minute
)

var nowUTC = func() time.Time { return time.Now().UTC() }

type respRecorder struct {
	http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (r *respRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *respRecorder) WriteHeader(statusCode int) {
	r.code = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// validRequestID accepts a UUID or a 32-char lowercase hex id.
func validRequestID(s string) bool {
	s = strings.ToLower(s)
	if id.IsID32(s) {
		return true
	}
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}

func jsonErr(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

// Idempotency makes mutating routes safe to retry. It must run after
// Session: the key is method + route + caller id + Ax-Request-Id. A repeated
// request with the same body replays the stored response; a different body
// or a request still in flight gets 409. Only 2xx responses are kept, so a
// rejected request can be retried under the same id.
func Idempotency(rdb *redis.Client, ttl time.Duration, log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	store := &replayStore{rdb: rdb, lockTTL: provisionalLockTTL, ttl: ttl}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			p := access.FromContext(req.Context())
			if !p.Authenticated() {
				return jsonErr(c, http.StatusUnauthorized, "authentication required")
			}

			reqID := strings.TrimSpace(req.Header.Get(HeaderRequestID))
			if reqID == "" {
				return jsonErr(c, http.StatusBadRequest, "missing "+HeaderRequestID)
			}
			if !validRequestID(reqID) {
				return jsonErr(c, http.StatusBadRequest, "invalid "+HeaderRequestID+" format")
			}
			reqAt, err := parseRequestAt(req.Header.Get(HeaderRequestAt))
			if err != nil {
				return jsonErr(c, http.StatusBadRequest, err.Error())
			}
			now := nowUTC()
			if reqAt.Before(now.Add(-maxClockSkew)) || reqAt.After(now.Add(maxClockSkew)) {
				return jsonErr(c, http.StatusBadRequest, HeaderRequestAt+" too skewed")
			}

			var body []byte
			if req.Body != nil {
				body, err = io.ReadAll(req.Body)
				if err != nil {
					return jsonErr(c, http.StatusBadRequest, "unreadable body")
				}
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			hash := bodyHash(body)

			key := replayKey(req.Method, c.Path(), p.UserID, reqID)
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()

			ok, err := store.reserve(ctx, key, replayEntry{
				InProgress:  true,
				BodySHA256:  hash,
				RequestAtMS: reqAt.UnixMilli(),
				StoredAt:    now,
			})
			if err != nil {
				log.Warn("idempotency store unavailable", zap.String("key", key), zap.Error(err))
				return jsonErr(c, http.StatusServiceUnavailable, "idempotency store unavailable")
			}
			if !ok {
				cur, err := store.load(ctx, key)
				if err != nil && !errors.Is(err, redis.Nil) {
					log.Warn("idempotency load failed", zap.String("key", key), zap.Error(err))
				}
				if cur.BodySHA256 != "" && cur.BodySHA256 != hash {
					return jsonErr(c, http.StatusConflict, HeaderRequestID+" reused with different body")
				}
				if !cur.InProgress && cur.Code != 0 && len(cur.Body) > 0 {
					c.Response().Header().Set("Ax-Idempotent-Replay", "true")
					return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
				}
				return jsonErr(c, http.StatusConflict, "request is already in progress")
			}

			rec := &respRecorder{ResponseWriter: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = rec
			handlerErr := next(c)
			if handlerErr != nil {
				c.Error(handlerErr)
			}

			// the request context may already be cancelled here
			finishCtx, finishCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer finishCancel()
			if rec.code >= 200 && rec.code < 300 {
				err = store.finish(finishCtx, key, replayEntry{
					Code:        rec.code,
					Body:        rec.buf.Bytes(),
					BodySHA256:  hash,
					RequestAtMS: reqAt.UnixMilli(),
					StoredAt:    nowUTC(),
				})
			} else {
				err = store.release(finishCtx, key)
			}
			if err != nil {
				log.Warn("idempotency finish failed", zap.String("key", key), zap.Error(err))
			}
			// already rendered; returned so the request logger records it
			return handlerErr
		}
	}
}
