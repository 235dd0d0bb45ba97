package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"voyago/auth"
	"voyago/directions"
	"voyago/filemgr"
	"voyago/itinerary"
	"voyago/live"
	"voyago/middleware"
	"voyago/ratelim"
	"voyago/trips"
)

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(h.Register))
	router.POST("/api/auth/login", rl.Limit(h.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(h.Logout))
	router.POST("/api/auth/token/refresh", rl.Limit(h.RefreshToken))
}

func AddTripRoutes(router *httprouter.Router, h *trips.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/trips", middleware.Authenticate(h.GetTrips))
	router.POST("/api/trips", rl.Limit(middleware.Authenticate(h.CreateTrip)))
	router.GET("/api/trips/:tripid", middleware.Authenticate(h.GetTrip))
	router.PUT("/api/trips/:tripid", middleware.Authenticate(h.UpdateTrip))
	router.DELETE("/api/trips/:tripid", middleware.Authenticate(h.DeleteTrip))
	router.PUT("/api/trips/:tripid/share", middleware.Authenticate(h.ShareTrip))
	router.GET("/api/trips/:tripid/export", middleware.Authenticate(h.ExportTripPDF))
	router.GET("/api/shared/:token", middleware.OptionalAuth(h.GetSharedTrip))
	router.PUT("/api/days/:dayid", middleware.Authenticate(h.UpdateDayTitle))
}

func AddItineraryRoutes(router *httprouter.Router, h *itinerary.Handler) {
	router.GET("/api/days/:dayid/items", middleware.Authenticate(h.GetDayItems))
	router.POST("/api/days/:dayid/items", middleware.Authenticate(h.CreateItem))
	router.PUT("/api/days/:dayid/reorder", middleware.Authenticate(h.ReorderDay))
	router.PUT("/api/items/:itemid", middleware.Authenticate(h.UpdateItem))
	router.DELETE("/api/items/:itemid", middleware.Authenticate(h.DeleteItem))
	router.PUT("/api/items/:itemid/apply-suggested-time", middleware.Authenticate(h.ApplySuggestedTime))
}

func AddDirectionsRoutes(router *httprouter.Router, h *directions.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/directions", rl.Limit(middleware.Authenticate(h.GetDirections)))
}

func AddUploadRoutes(router *httprouter.Router, h *filemgr.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/uploads", rl.Limit(middleware.Authenticate(h.UploadAttachment)))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/ws/trips/:tripid", live.WebSocketHandler(hub))
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}
