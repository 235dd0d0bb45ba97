package trips

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"voyago/models"
	"voyago/ordering"
	"voyago/utils"
)

// GET /api/trips/:tripid/export — the whole itinerary as a printable PDF.
// Published trips get a QR code of their share link on the cover.
func (h *Handler) ExportTripPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	trip := h.tripForOwner(w, r, ps.ByName("tripid"))
	if trip == nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
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

	byDay := make(map[string][]models.Item)
	for _, it := range items {
		byDay[it.DayID] = append(byDay[it.DayID], it)
	}
	for id := range byDay {
		ordering.Sort(byDay[id])
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, trip.Title)
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("%s - %s", trip.StartDate, trip.EndDate))
	pdf.Ln(10)

	if trip.ShareToken != nil {
		shareURL := publicBaseURL() + "/share/" + *trip.ShareToken
		if qrPNG, err := qrcode.Encode(shareURL, qrcode.Medium, 256); err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("share-qr", opts, bytes.NewReader(qrPNG))
			pdf.ImageOptions("share-qr", 160, 10, 35, 35, false, opts, 0, "")
		}
	}

	for _, day := range days {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 14)
		title := fmt.Sprintf("Day %d  %s", day.DayNumber, day.DayDate)
		if day.Title != "" && day.Title != fmt.Sprintf("Day %d", day.DayNumber) {
			title += "  -  " + day.Title
		}
		pdf.Cell(0, 10, title)
		pdf.Ln(10)

		pdf.SetFont("Arial", "", 11)
		dayItems := byDay[day.DayID]
		if len(dayItems) == 0 {
			pdf.Cell(0, 7, "  (nothing planned)")
			pdf.Ln(7)
			continue
		}
		for _, it := range dayItems {
			pdf.Cell(0, 7, "  "+itemLine(&it))
			pdf.Ln(7)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=trip-"+trip.TripID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func itemLine(it *models.Item) string {
	var b strings.Builder
	if it.StartTime != "" {
		b.WriteString(it.StartTime)
		if it.EndTime != "" && it.EndTime != it.StartTime {
			b.WriteString("-" + it.EndTime)
		}
		b.WriteString("  ")
	}
	b.WriteString(string(it.Category) + ": " + it.Name)
	if it.Transport != nil && it.Transport.DurationText != "" {
		b.WriteString("  (" + strings.TrimPrefix(it.Transport.DurationText, "🤖 ") + ")")
	}
	if it.LocationName != "" && it.LocationName != it.Name {
		b.WriteString("  @ " + it.LocationName)
	}
	return b.String()
}

func publicBaseURL() string {
	base := strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/")
	if base == "" {
		base = "http://localhost:8080"
	}
	return base
}
