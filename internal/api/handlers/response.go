package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/potionworks/potion-api-be/internal/models"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondServiceError maps a service-layer failure onto the HTTP error
// taxonomy: validation 400, not-found 404, conflict 409, everything
// else 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var verrs models.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		respondJSON(w, http.StatusBadRequest, map[string]any{"errors": verrs})
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, "Potion not found")
	case errors.Is(err, models.ErrDuplicateUser):
		respondError(w, http.StatusConflict, models.ErrDuplicateUser.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
