package directions

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"voyago/transit"
	"voyago/utils"
)

type Handler struct {
	Client *Client
}

func NewHandler(c *Client) *Handler {
	return &Handler{Client: c}
}

// GetDirections proxies a route lookup for the item editor. When a start
// time is supplied the response also carries the padded transit suggestion
// so the client never inflates durations itself.
func (h *Handler) GetDirections(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	from := q.Get("from")
	to := q.Get("to")
	if from == "" || to == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "from and to are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	route, err := h.Client.Lookup(ctx, from, to)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Route lookup failed")
		return
	}

	payload := utils.M{
		"distanceText":    route.DistanceText,
		"distanceMeters":  route.DistanceMeters,
		"durationSeconds": route.DurationSeconds,
	}
	if start := q.Get("start"); start != "" {
		res := transit.ResolveTransit(route.DurationSeconds, start)
		payload["suggestion"] = utils.M{
			"route_minutes":  res.RouteMinutes,
			"buffer_minutes": res.BufferMinutes,
			"duration_text":  res.DurationText,
			"end_time":       res.EndTime,
			"day_offset":     res.DayOffset,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, payload)
}
