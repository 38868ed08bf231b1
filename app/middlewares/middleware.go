package middlewares

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/Rakhulsr/go-catalog/app/metrics"
	"github.com/Rakhulsr/go-catalog/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

const maxOverrideFormMemory = 4 << 20

// MaxBodySize bounds every request body: one upload plus the form fields.
const MaxBodySize = services.MaxUploadSize + 1<<20

// MethodOverrideMiddleware caps the body size and lets HTML forms and multipart clients send PUT and
// DELETE as POST with a "_method" field. It has to wrap the router, since mux
// matches the method before its own middlewares run.
func MethodOverrideMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
		}
		if r.Method == http.MethodPost {
			override := r.Header.Get("X-HTTP-Method-Override")
			if override == "" {
				contentType := r.Header.Get("Content-Type")
				switch {
				// A body that fails to parse is not overridden. The handler
				// parses again and answers 400.
				case strings.HasPrefix(contentType, "multipart/form-data"):
					if err := r.ParseMultipartForm(maxOverrideFormMemory); err != nil {
						log.Printf("MethodOverrideMiddleware: %s %s: %v", r.Method, r.URL.Path, err)
						break
					}
					override = r.FormValue("_method")
				case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"):
					if err := r.ParseForm(); err != nil {
						log.Printf("MethodOverrideMiddleware: %s %s: %v", r.Method, r.URL.Path, err)
						break
					}
					override = r.Form.Get("_method")
				}
			}
			switch method := strings.ToUpper(override); method {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = method
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RecoverMiddleware answers a panicking handler with a 500. The panic value
// is only shown outside production.
func RecoverMiddleware(rnd *render.Render, production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Printf("RecoverMiddleware: panic on %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
					message := "Server Error"
					if !production {
						message = fmt.Sprint(rec)
					}
					_ = rnd.JSON(w, http.StatusInternalServerError, map[string]string{"message": message})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware records every matched request under its route template.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		metrics.RecordRequest(r.Method, route, rec.status, time.Since(start))
	})
}
