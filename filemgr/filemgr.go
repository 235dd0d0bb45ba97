package filemgr

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"

	"voyago/db"
	"voyago/middleware"
	"voyago/models"
	"voyago/utils"
)

const (
	uploadDir    = "./static/uploads"
	thumbDir     = "./static/uploads/thumb"
	maxUploadMem = 10 << 20 // 10 MB
	thumbWidth   = 300
)

var allowedExtensions = map[string]string{
	".jpg":  "image",
	".jpeg": "image",
	".png":  "image",
	".webp": "image",
	".pdf":  "pdf",
}

type Handler struct {
	Store *db.Store
}

func NewHandler(store *db.Store) *Handler {
	return &Handler{Store: store}
}

// UploadAttachment handles POST /api/uploads. Images get a thumbnail
// alongside the original; PDFs are stored as-is.
func (h *Handler) UploadAttachment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.RequestingUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMem); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	kind, ok := allowedExtensions[ext]
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported file type")
		return
	}

	if err := utils.EnsureDir(uploadDir); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to prepare upload directory")
		return
	}

	filename, err := utils.SaveFile(file, header, uploadDir)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save file")
		return
	}

	att := &models.Attachment{
		FileID:    utils.GetUUID(),
		UserID:    userID,
		TripID:    r.FormValue("trip_id"),
		Kind:      kind,
		URL:       "/static/uploads/" + filename,
		Size:      header.Size,
		CreatedAt: time.Now(),
	}

	if kind == "image" {
		thumbName, err := makeThumbnail(filepath.Join(uploadDir, filename))
		if err != nil {
			// Keep the original even when thumbnailing fails.
			fmt.Println("thumbnail generation failed:", err)
		} else {
			att.ThumbnailURL = "/static/uploads/thumb/" + thumbName
		}
	}

	if err := h.Store.InsertFile(r.Context(), att); err != nil {
		os.Remove(filepath.Join(uploadDir, filename))
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record upload")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, att)
}

func makeThumbnail(srcPath string) (string, error) {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if err := utils.EnsureDir(thumbDir); err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	thumbName := base + ".jpg"
	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, thumbName)); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}
	return thumbName, nil
}
