package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/heartbeats/poet-go/pkg/poet/telemetry"
)

// statusTracker keeps the last observation for the /state endpoint.
type statusTracker struct {
	mu      sync.RWMutex
	goal    float64
	windows uint64
	lastTag uint64
	rate    float64
	power   float64
}

func newStatusTracker(goal float64) *statusTracker {
	return &statusTracker{goal: goal}
}

func (s *statusTracker) record(tag uint64, rate, power float64) {
	s.mu.Lock()
	s.windows++
	s.lastTag = tag
	s.rate = rate
	s.power = power
	s.mu.Unlock()
}

type statusResponse struct {
	Goal       float64 `json:"performance_goal"`
	Windows    uint64  `json:"windows_observed"`
	LastTag    uint64  `json:"last_tag"`
	LastRate   float64 `json:"last_heartbeat_rate"`
	LastPower  float64 `json:"last_power_watts"`
}

type statusServer struct {
	addr    string
	metrics *telemetry.Metrics
	status  *statusTracker
}

func newStatusServer(addr string, metrics *telemetry.Metrics, status *statusTracker) *statusServer {
	return &statusServer{addr: addr, metrics: metrics, status: status}
}

// RegisterRoutes wires the server's endpoints onto r.
func (s *statusServer) RegisterRoutes(r *mux.Router) {
	r.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	r.HandleFunc("/state", s.handleState).Methods("GET")
	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
}

func (s *statusServer) handleState(w http.ResponseWriter, r *http.Request) {
	s.status.mu.RLock()
	resp := statusResponse{
		Goal:      s.status.goal,
		Windows:   s.status.windows,
		LastTag:   s.status.lastTag,
		LastRate:  s.status.rate,
		LastPower: s.status.power,
	}
	s.status.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *statusServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (s *statusServer) serve(ctx context.Context) {
	r := mux.NewRouter()
	s.RegisterRoutes(r)

	srv := &http.Server{
		Addr:         s.addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "status server: %v\n", err)
	}
}
