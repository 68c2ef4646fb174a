package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"travel-backend/internal/cache"
	"travel-backend/internal/repositories"
	"travel-backend/pkg/utils"
)

// ReferenceHandler serves the lookup tables behind the booking form
// dropdowns. List responses are cached in Redis; on a cache miss the
// marshalled payload is stored for ReferenceTTL.
type ReferenceHandler struct {
	repo *repositories.ReferenceRepository
}

func NewReferenceHandler(repo *repositories.ReferenceRepository) *ReferenceHandler {
	return &ReferenceHandler{repo: repo}
}

func (h *ReferenceHandler) serveCached(w http.ResponseWriter, r *http.Request, key string, load func() (interface{}, error)) {
	if data, ok := cache.GetCached(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	result, err := load()
	if err != nil {
		utils.Error(w, err)
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		utils.Error(w, err)
		return
	}
	cache.SetCached(r.Context(), key, data, cache.ReferenceTTL)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ListAirports handles GET /api/reference/airports
func (h *ReferenceHandler) ListAirports(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, cache.AirportsKey, func() (interface{}, error) {
		return h.repo.ListAirports(r.Context())
	})
}

// ListTourOperators handles GET /api/reference/tour-operators
func (h *ReferenceHandler) ListTourOperators(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, cache.TourOperatorsKey, func() (interface{}, error) {
		return h.repo.ListTourOperators(r.Context())
	})
}

// ListCruiseLines handles GET /api/reference/cruise-lines
func (h *ReferenceHandler) ListCruiseLines(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, cache.CruiseLinesKey, func() (interface{}, error) {
		return h.repo.ListCruiseLines(r.Context())
	})
}

// GetClient handles GET /api/clients/{id}
func (h *ReferenceHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.BadRequest(w, "Invalid client ID")
		return
	}

	client, err := h.repo.GetClient(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, client)
}
