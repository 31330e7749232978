package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/potionworks/potion-api-be/internal/models"
	"github.com/potionworks/potion-api-be/internal/services"
	"github.com/rs/zerolog/log"
)

// PotionHandler handles HTTP requests for the potion catalog.
type PotionHandler struct {
	service services.PotionServiceProvider
}

// NewPotionHandler creates a new PotionHandler.
func NewPotionHandler(service services.PotionServiceProvider) *PotionHandler {
	return &PotionHandler{service: service}
}

// GetAll handles the request to list every potion.
func (h *PotionHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	potions, err := h.service.GetAllPotions()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list potions")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, potions)
}

// Get handles the request to get a single potion by its ID.
func (h *PotionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	potion, err := h.service.GetPotionByID(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, potion)
}

// GetNames handles the request to list only the potion names.
func (h *PotionHandler) GetNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.GetPotionNames()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list potion names")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, names)
}

// GetByVendor handles the request to list the potions of one vendor.
func (h *PotionHandler) GetByVendor(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "vendor_id")
	potions, err := h.service.GetPotionsByVendor(vendorID)
	if err != nil {
		log.Error().Err(err).Str("vendor", vendorID).Msg("Failed to list potions by vendor")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, potions)
}

// GetByPriceRange handles the request to list potions priced in [min, max].
func (h *PotionHandler) GetByPriceRange(w http.ResponseWriter, r *http.Request) {
	min := r.URL.Query().Get("min")
	max := r.URL.Query().Get("max")
	potions, err := h.service.GetPotionsByPriceRange(min, max)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, potions)
}

// Create handles the request to create a new potion.
func (h *PotionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var potion models.Potion
	if err := json.NewDecoder(r.Body).Decode(&potion); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.CreatePotion(potion)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create potion")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update handles the request to merge new field values into a potion.
func (h *PotionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var update models.PotionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdatePotion(id, update)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete handles the request to delete a potion.
func (h *PotionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeletePotion(id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Potion deleted successfully"})
}

// DistinctCategories handles the request to count distinct categories.
func (h *PotionHandler) DistinctCategories(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.CountDistinctCategories()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"total_categories": count})
}

// AverageScoreByVendor handles the per-vendor average score aggregation.
func (h *PotionHandler) AverageScoreByVendor(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.AverageScoreByVendor()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// AverageScoreByCategory handles the per-category average score aggregation.
func (h *PotionHandler) AverageScoreByCategory(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.AverageScoreByCategory()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// StrengthFlavorRatio handles the strength/flavor projection.
func (h *PotionHandler) StrengthFlavorRatio(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.StrengthFlavorRatios()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Search handles the generic group-by analytics query.
func (h *PotionHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.service.AggregateSearch(q.Get("groupBy"), q.Get("metric"), q.Get("field"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
