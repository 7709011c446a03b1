package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/mgregerson/sharebnb/internal/service"
	"github.com/mgregerson/sharebnb/pkg/validator"
)

type RentalHandler struct {
	rentalService *service.RentalService
}

func NewRentalHandler(rentalService *service.RentalService) *RentalHandler {
	return &RentalHandler{rentalService: rentalService}
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.rentalService.ListRentals(r.Context())
	if err != nil {
		log.Printf("ERROR list rentals: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"rentals": rentals})
}

func (h *RentalHandler) Add(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	var input service.AddRentalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	rd := input.RentalData
	if errs := validator.ValidateRental(rd.Description, rd.Location, rd.Price); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}
	price, _ := strconv.Atoi(rd.Price)

	rental, err := h.rentalService.AddRental(r.Context(), username, price, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, service.ErrBadPhoto):
			writeError(w, http.StatusBadRequest, "BAD_PHOTO", "Rental photo could not be decoded")
		default:
			log.Printf("ERROR add rental: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"rental": rental})
}

// Get serves both GET /rentals/{id} and GET /rentals/{username}: a numeric
// path segment is a rental id, anything else an owner's username.
func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		rental, err := h.rentalService.GetRental(r.Context(), id)
		if err != nil {
			log.Printf("ERROR get rental: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
			return
		}
		// Unknown id answers with a null rental, not a 404.
		writeJSON(w, http.StatusOK, map[string]any{"rental": rental})
		return
	}

	rentals, err := h.rentalService.ListUserRentals(r.Context(), key)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			log.Printf("ERROR list user rentals: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"rentals": rentals})
}

func (h *RentalHandler) UserProfile(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	user, rentals, err := h.rentalService.UserProfile(r.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			log.Printf("ERROR user profile: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user, "rentals": rentals})
}
