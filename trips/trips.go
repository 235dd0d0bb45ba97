package trips

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"voyago/db"
	"voyago/middleware"
	"voyago/models"
	"voyago/mq"
	"voyago/utils"
)

// Handler serves trip and day endpoints against the injected store.
type Handler struct {
	Store *db.Store
}

func NewHandler(store *db.Store) *Handler {
	return &Handler{Store: store}
}

type createTripRequest struct {
	Title      string   `json:"title"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	BudgetGoal *float64 `json:"budget_goal,omitempty"`
}

// POST /api/trips
func (h *Handler) CreateTrip(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.RequestingUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Trip title is required")
		return
	}

	trip := models.Trip{
		TripID:     "trip" + utils.GenerateRandomString(13),
		UserID:     userID,
		Title:      req.Title,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		BudgetGoal: req.BudgetGoal,
		Is24Hr:     true,
		CreatedAt:  time.Now(),
	}

	days, err := GenerateDays(trip.TripID, trip.StartDate, trip.EndDate)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.InsertTrip(ctx, &trip); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating trip")
		return
	}
	if err := h.Store.CreateDays(ctx, days); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating trip days")
		return
	}

	utils.SendResponse(w, http.StatusCreated, utils.M{"trip": trip, "days": days}, "Trip created")
}

// GET /api/trips
func (h *Handler) GetTrips(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.RequestingUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	trips, err := h.Store.ListTripsByUser(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching trips")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, trips)
}

// tripForOwner loads a trip and enforces ownership; replies and returns nil
// on any failure.
func (h *Handler) tripForOwner(w http.ResponseWriter, r *http.Request, tripID string) *models.Trip {
	userID := middleware.RequestingUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return nil
	}
	trip, err := h.Store.GetTrip(r.Context(), tripID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return nil
	}
	if trip.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return nil
	}
	return trip
}

// GET /api/trips/:tripid — trip, days and all items in one payload.
func (h *Handler) GetTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	trip := h.tripForOwner(w, r, ps.ByName("tripid"))
	if trip == nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	days, err := h.Store.ListDays(ctx, trip.TripID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching days")
		return
	}
	items, err := h.Store.ListTripItems(ctx, trip.TripID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching items")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"trip": trip, "days": days, "items": items})
}

type updateTripRequest struct {
	Title      string   `json:"title"`
	BudgetGoal *float64 `json:"budget_goal,omitempty"`
	Is24Hr     bool     `json:"is_24hr"`
}

// PUT /api/trips/:tripid
func (h *Handler) UpdateTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	trip := h.tripForOwner(w, r, ps.ByName("tripid"))
	if trip == nil {
		return
	}

	var req updateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		req.Title = trip.Title
	}

	if err := h.Store.UpdateTripSettings(r.Context(), trip.TripID, req.Title, req.BudgetGoal, req.Is24Hr); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating trip")
		return
	}
	mq.Emit(r.Context(), mq.Event{Kind: "trip-updated", TripID: trip.TripID})
	utils.SendResponse(w, http.StatusOK, nil, "Trip updated")
}

// DELETE /api/trips/:tripid
func (h *Handler) DeleteTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	trip := h.tripForOwner(w, r, ps.ByName("tripid"))
	if trip == nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.Store.DeleteTripCascade(ctx, trip.TripID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting trip")
		return
	}
	log.Printf("trip %s deleted with its days and items", trip.TripID)
	utils.SendResponse(w, http.StatusOK, nil, "Trip deleted")
}

// PUT /api/trips/:tripid/share — toggles the public share token.
func (h *Handler) ShareTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	trip := h.tripForOwner(w, r, ps.ByName("tripid"))
	if trip == nil {
		return
	}

	var token *string
	if trip.ShareToken == nil {
		t := utils.GetUUID()
		token = &t
	}
	if err := h.Store.SetShareToken(r.Context(), trip.TripID, token); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating share settings")
		return
	}
	utils.SendResponse(w, http.StatusOK, utils.M{"share_token": token}, "Share settings updated")
}

// GET /api/shared/:token — read-only public view. Auth is optional; a
// signed-in owner gets is_owner so the client can offer the edit view.
func (h *Handler) GetSharedTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	trip, err := h.Store.GetTripByShareToken(ctx, ps.ByName("token"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Shared trip not found")
		return
	}

	days, err := h.Store.ListDays(ctx, trip.TripID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching days")
		return
	}
	items, err := h.Store.ListTripItems(ctx, trip.TripID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching items")
		return
	}
	isOwner := middleware.RequestingUserID(r) == trip.UserID
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"trip": trip, "days": days, "items": items, "is_owner": isOwner})
}

type updateDayRequest struct {
	Title string `json:"title"`
}

// PUT /api/days/:dayid — free-text day title only; date and number are
// immutable after creation.
func (h *Handler) UpdateDayTitle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := middleware.RequestingUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	dayID := ps.ByName("dayid")
	day, err := h.Store.GetDay(r.Context(), dayID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Day not found")
		return
	}
	trip, err := h.Store.GetTrip(r.Context(), day.TripID)
	if err != nil || trip.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var req updateDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.Store.UpdateDayTitle(r.Context(), dayID, req.Title); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating day")
		return
	}
	utils.SendResponse(w, http.StatusOK, nil, "Day updated")
}
