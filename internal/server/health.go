package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/mkoller-dev/quillpress/internal/blogapi"
)

type (
	// HealthSrvc handles business logic for health check functionality
	HealthSrvc struct {
		api *blogapi.Client
	}

	// HealthResponse represents the response structure for health check endpoint
	HealthResponse struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
		Backend   bool      `json:"backend"`
	}
)

func NewHealthHandler(srvc *HealthSrvc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := hlog.FromRequest(r)

		response := srvc.check(ctx)

		w.Header().Set("Content-Type", "application/json")

		if response.Backend {
			logger.Debug().Msg("Backend healthcheck ok")
			w.WriteHeader(http.StatusOK)
		} else {
			logger.Error().Msg("Backend healthcheck failed")
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Error().Err(err).Msg("Failed to encode health check response")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}
}

func NewHealthSrvc(api *blogapi.Client) *HealthSrvc {
	return &HealthSrvc{api: api}
}

// check probes the blog API with its cheapest unauthenticated read. This
// frontend serves nothing useful when the backend is down, so backend
// reachability is the health signal.
func (s *HealthSrvc) check(ctx context.Context) HealthResponse {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.api.ListCategories(probeCtx)

	now := time.Now().UTC()

	if err == nil {
		return HealthResponse{
			Status:    "serving",
			Timestamp: now,
			Backend:   true,
		}
	}
	return HealthResponse{
		Status:    "not serving",
		Timestamp: now,
		Backend:   false,
	}
}
