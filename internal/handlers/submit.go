package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/domain"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/submission"
)

const defaultMaxUpload = 10 << 20 // 10 MB

type submitRequest struct {
	Contact *domain.ContactPatch `json:"contact,omitempty"`
}

// HandleSubmit serves POST /api/configurator/sessions/{id}/submit.
//
// The body is either JSON {"contact": {...}} or multipart/form-data with an
// optional "contact" JSON field and an optional "file" attachment (photo or
// PDF). A contact in the body is merged before the request is sent.
func (e *Env) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if e.SubmitLimiter != nil && !e.SubmitLimiter.Allow(clientIP(r)) {
		w.Header().Set("Retry-After", "60")
		writeError(w, http.StatusTooManyRequests, "too many requests, try again later")
		return
	}

	id := r.PathValue("id")
	var (
		req        submitRequest
		attachment *submission.File
	)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case mediaType == "multipart/form-data":
		limit := e.MaxUploadBytes
		if limit <= 0 {
			limit = defaultMaxUpload
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)
		if err := r.ParseMultipartForm(limit); err != nil {
			writeError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
			return
		}
		defer r.MultipartForm.RemoveAll()

		if raw := strings.TrimSpace(r.FormValue("contact")); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Contact); err != nil {
				writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
				return
			}
		}

		file, header, err := r.FormFile("file")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			writeError(w, http.StatusBadRequest, "bad file field: "+err.Error())
			return
		default:
			defer file.Close()
			attachment = &submission.File{
				Name:        header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
				Body:        file,
			}
		}
	case r.ContentLength != 0:
		if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
	}

	ack, err := e.Wizard.Submit(r.Context(), id, req.Contact, attachment)
	if err != nil {
		e.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ack)
}
