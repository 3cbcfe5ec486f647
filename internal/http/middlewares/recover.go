package middlewares

import (
	"net/http"

	httperrors "github.com/kjunlab/authfront/internal/http/errors"
	"github.com/kjunlab/authfront/internal/observability/logger"
)

// WithRecover captura panics, los loguea con stack y responde 500 en vez
// de tumbar el proceso.
func WithRecover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.From(r.Context()).Error("panic recovered",
						logger.String("panic", toString(rec)),
						logger.Path(r.URL.Path),
					)
					httperrors.WriteError(w, httperrors.ErrInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return "unknown panic"
}
