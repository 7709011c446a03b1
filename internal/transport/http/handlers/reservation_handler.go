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

type ReservationHandler struct {
	reservationService *service.ReservationService
}

func NewReservationHandler(reservationService *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

func (h *ReservationHandler) Add(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	var input service.AddReservationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateReservation(input.StartDate, input.EndDate, input.RentalID); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	reservation, err := h.reservationService.AddReservation(r.Context(), username, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, service.ErrRentalNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Rental not found")
		default:
			log.Printf("ERROR add reservation: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"reservation": reservation})
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	reservations, err := h.reservationService.ListUserReservations(r.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			log.Printf("ERROR list reservations: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"reservations": reservations})
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	reservation, err := h.reservationService.GetUserReservation(r.Context(), username, id)
	if err != nil {
		log.Printf("ERROR get reservation: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	// Miss answers with a null reservation, not a 404.
	writeJSON(w, http.StatusOK, map[string]any{"reservation": reservation})
}
