package itinerary

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"voyago/models"
	"voyago/utils"
)

// Handler exposes the itinerary service over HTTP.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// GET /api/days/:dayid/items
func (h *Handler) GetDayItems(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	items, err := h.Svc.DayItems(r.Context(), ps.ByName("dayid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching items")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}

type createItemRequest struct {
	models.Item
	// optional sibling the new item should directly follow
	InsertAfter string `json:"insert_after,omitempty"`
}

// POST /api/days/:dayid/items
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	req.Item.DayID = ps.ByName("dayid")

	warnings, err := h.Svc.AddItem(r.Context(), &req.Item, req.InsertAfter)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.SendResponse(w, http.StatusCreated, req.Item, "Item created", warnings...)
}

// PUT /api/items/:itemid
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var item models.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	item.ItemID = ps.ByName("itemid")

	warnings, err := h.Svc.UpdateItem(r.Context(), &item)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.SendResponse(w, http.StatusOK, item, "Item updated", warnings...)
}

// DELETE /api/items/:itemid
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.Svc.DeleteItem(r.Context(), ps.ByName("itemid")); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.SendResponse(w, http.StatusOK, nil, "Item deleted")
}

type reorderRequest struct {
	MovedItemID string `json:"moved_item_id"`
	TargetIndex int    `json:"target_index"`
}

// PUT /api/days/:dayid/reorder
func (h *Handler) ReorderDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	dayID := ps.ByName("dayid")
	if err := h.Svc.Reorder(r.Context(), dayID, req.MovedItemID, req.TargetIndex); err != nil {
		// The client must discard its optimistic order and refetch.
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	}

	items, err := h.Svc.DayItems(r.Context(), dayID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Reordered but failed to reload items")
		return
	}
	utils.SendResponse(w, http.StatusOK, items, "Day reordered")
}

// PUT /api/items/:itemid/apply-suggested-time
func (h *Handler) ApplySuggestedTime(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	item, warnings, err := h.Svc.ApplySuggestedTime(r.Context(), ps.ByName("itemid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.SendResponse(w, http.StatusOK, item, "Suggested time applied", warnings...)
}
