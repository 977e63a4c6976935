package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/finsight-app/finsight/internal/api/middleware"
)

// maxUploadBytes caps the in-memory portion of multipart parsing.
const maxUploadBytes = 32 << 20

// Forwarder relays an uploaded statement to the ingestion workflow.
type Forwarder interface {
	Forward(ctx context.Context, filename, mimeType string, content []byte) (string, error)
}

// UploadHandler handles statement uploads.
type UploadHandler struct {
	proxy Forwarder
	log   zerolog.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(proxy Forwarder, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{proxy: proxy, log: log}
}

// Upload handles POST /api/upload. The statement arrives as multipart form
// field "data"; the workflow trigger's raw response body is returned to the
// caller as an opaque string.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "No file")
		return
	}

	file, header, err := r.FormFile("data")
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "No file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeFailure(w, h.log, "Failed to read upload", err)
		return
	}

	ack, err := h.proxy.Forward(r.Context(), header.Filename, header.Header.Get("Content-Type"), content)
	if err != nil {
		writeFailure(w, h.log, "Upload failed", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    ack,
	})
}
