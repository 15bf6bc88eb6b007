// Flaky_target is a test HTTP server for exercising the health checker by
// hand. Its /healthz endpoint fails a configurable share of requests and can
// add latency to trigger timeouts.
//
// Usage:
//
//	go run ./scripts -port 8941 -fail-rate 25 -latency 2s
//	go run ./cmd -d 1 -t 1 http://localhost:8941/healthz
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"time"
)

func main() {
	port := flag.Int("port", 8941, "port to listen on")
	failRate := flag.Int("fail-rate", 25, "percentage of requests that fail")
	failCode := flag.Int("fail-code", http.StatusServiceUnavailable, "status code returned on failure")
	latency := flag.Duration("latency", 0, "delay added to every response")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if *latency > 0 {
			select {
			case <-time.After(*latency):
			case <-r.Context().Done():
				return
			}
		}

		if rand.Intn(100) < *failRate {
			slog.Warn("returning failure", slog.Int("code", *failCode), slog.String("from", r.RemoteAddr))
			w.WriteHeader(*failCode)
			return
		}

		slog.Info("returning ok", slog.String("from", r.RemoteAddr))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf(":%d", *port)
	slog.Info("starting flaky target", slog.String("addr", addr), slog.Int("fail_rate", *failRate))
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("server failed", slog.Any("err", err))
		os.Exit(1)
	}
}
