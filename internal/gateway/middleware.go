package gateway

import (
	"fmt"
	"net/http"
	"time"

	"ticketly-gateway/internal/utils"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (g *Gateway) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GenerateRequestID()
		w.Header().Set("X-Request-ID", requestID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(recorder, r)

		g.logger.LogAPI(r.Method, r.URL.Path,
			fmt.Sprintf("%d %s", recorder.status, requestID),
			time.Since(start).Round(time.Millisecond).String())
	})
}
