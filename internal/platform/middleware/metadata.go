package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

// RequestMeta carries transport facts about the caller for audit logging.
type RequestMeta struct {
	ClientIP string
	Device   string
}

type contextKeyRequestMeta struct{}

// GetRequestMeta retrieves request metadata captured by Metadata.
func GetRequestMeta(ctx context.Context) RequestMeta {
	meta, ok := ctx.Value(contextKeyRequestMeta{}).(RequestMeta)
	if !ok {
		return RequestMeta{}
	}
	return meta
}

// Metadata records the client IP and a human-readable device label so audit
// events can state where a change came from.
func Metadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		meta := RequestMeta{
			ClientIP: clientIP(r),
			Device:   deviceLabel(r.UserAgent()),
		}
		ctx := context.WithValue(r.Context(), contextKeyRequestMeta{}, meta)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func deviceLabel(ua string) string {
	if ua == "" {
		return "Unknown Device"
	}
	parsed := useragent.New(ua)
	name, _ := parsed.Browser()
	os := parsed.OS()
	label := strings.TrimSpace(name + " on " + os)
	if label == "on" || label == "" {
		return "Unknown Device"
	}
	return label
}
