package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"productconsole/logger"
	"productconsole/models"
	"productconsole/utils"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	serviceKey   contextKey = "service"
)

// RequestIDHeader carries the request id back to the caller.
const RequestIDHeader = "X-Request-ID"

// responseWriter HTTP 응답을 캡처하기 위한 래퍼
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func wrapWriter(w http.ResponseWriter) *responseWriter {
	if rw, ok := w.(*responseWriter); ok {
		return rw
	}
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

// LoggingMiddleware HTTP 요청/응답 로깅 미들웨어
func LoggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := wrapWriter(w)

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = ulid.Make().String()
		}
		rw.Header().Set(RequestIDHeader, requestID)
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)

		logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"query":      r.URL.RawQuery,
			"ip":         getClientIP(r),
			"user_agent": r.UserAgent(),
		}).Debug("HTTP Request")

		next.ServeHTTP(rw, r.WithContext(ctx))

		logger.WithFields(map[string]interface{}{
			"request_id":  requestID,
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(start).Milliseconds(),
			"size":        rw.written,
		}).Log(getLogLevelForStatus(rw.statusCode), "HTTP Response")
	}
}

// RequestID returns the id LoggingMiddleware assigned to the request, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// getLogLevelForStatus 상태 코드에 따른 로그 레벨 결정
func getLogLevelForStatus(statusCode int) logger.LogLevel {
	switch {
	case statusCode >= 500:
		return logger.ERROR
	case statusCode >= 400:
		return logger.WARN
	default:
		return logger.INFO
	}
}

// getClientIP 클라이언트 IP 추출
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// ServiceTokenMiddleware requires a valid service bearer token when secret is non-empty.
// An empty secret disables the check.
func ServiceTokenMiddleware(secret string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if secret == "" {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			requestID := RequestID(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WithFields(map[string]interface{}{
					"request_id": requestID,
					"ip":         getClientIP(r),
				}).Warn("Missing authorization header")
				writeUnauthorized(w, "Authorization header required", nil)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.WithFields(map[string]interface{}{
					"request_id": requestID,
					"ip":         getClientIP(r),
				}).Warn("Invalid authorization header format")
				writeUnauthorized(w, "Invalid authorization header format", nil)
				return
			}

			claims, err := utils.ValidateServiceToken([]byte(secret), parts[1])
			if err != nil {
				logger.WithFields(map[string]interface{}{
					"request_id": requestID,
					"ip":         getClientIP(r),
					"error":      err.Error(),
				}).Warn("Invalid or expired token")
				writeUnauthorized(w, "Invalid or expired token", err)
				return
			}

			ctx := context.WithValue(r.Context(), serviceKey, claims.Service)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// CallingService returns the service name from a validated token, or "".
func CallingService(ctx context.Context) string {
	name, _ := ctx.Value(serviceKey).(string)
	return name
}

func writeUnauthorized(w http.ResponseWriter, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(models.ErrorResponse(message, err))
}

// CORSMiddleware CORS 설정 미들웨어
func CORSMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// ChainMiddleware 미들웨어 체인
func ChainMiddleware(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}
