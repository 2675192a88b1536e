package temperaments

import (
	"encoding/json"
	"net/http"

	"dog-breeds-api/internal/platform/httpclient"
	"dog-breeds-api/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.NewNop()
	}
	r.Get("/temperaments", listTemperamentsHandler(svc, log))
}

type temperamentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// listTemperamentsHandler godoc
// @Summary  List temperaments, seeding them from the API on first use
// @Tags     temperaments
// @Produce  json
// @Success  200 {array} temperamentResponse
// @Failure  502 {object} map[string]string
// @Router   /temperaments [get]
func listTemperamentsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Seed(r.Context())
		if err != nil {
			status := http.StatusInternalServerError
			msg := "internal error"

			var (
				httpErr *httpclient.HTTPError
				netErr  *httpclient.NetworkError
			)
			switch {
			case errors.As(err, &httpErr):
				status, msg = http.StatusBadGateway, "API request failed"
			case errors.As(err, &netErr):
				status, msg = http.StatusGatewayTimeout, "No response received from API"
			}

			log.Error("list temperaments failed", map[string]any{
				"error":      err,
				"request_id": chimw.GetReqID(r.Context()),
			})
			writeJSON(w, status, map[string]string{"error": msg})
			return
		}

		out := make([]temperamentResponse, 0, len(items))
		for _, t := range items {
			out = append(out, temperamentResponse{ID: t.ID, Name: t.Name})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
