// Package api provides HTTP handlers for the deck API.
package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vedasmart/deck-api/internal/api/shared"
	"github.com/vedasmart/deck-api/internal/export"
	"github.com/vedasmart/deck-api/internal/generation"
	"github.com/vedasmart/deck-api/internal/service"
	"github.com/vedasmart/deck-api/internal/viewer"
)

// maxUploadBytes caps the multipart request body.
const maxUploadBytes = 32 << 20

// Multipart field names for the upload endpoint.
const (
	chapterField = "chapter"
	styleField   = "style"
)

const pdfMIMEType = "application/pdf"

// DeckHandler handles deck lifecycle HTTP requests.
type DeckHandler struct {
	service  *service.DeckService
	exporter *export.Exporter
	logger   *slog.Logger
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(
	svc *service.DeckService,
	exporter *export.Exporter,
	logger *slog.Logger,
) *DeckHandler {
	if svc == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deck service cannot be nil for DeckHandler")
	}
	if exporter == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("exporter cannot be nil for DeckHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DeckHandler")
	}
	return &DeckHandler{
		service:  svc,
		exporter: exporter,
		logger:   logger.With(slog.String("component", "deck_handler")),
	}
}

// CreateDeck handles POST /decks requests. It accepts a multipart form with
// a required chapter PDF and an optional style sample (PDF or image) and
// starts a background generation, responding 202 with the session ID.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart form data")
		return
	}

	chapter, err := readDocument(r, chapterField)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "A chapter document is required")
		return
	}
	if chapter.MIMEType != pdfMIMEType {
		shared.RespondWithError(w, r, http.StatusUnsupportedMediaType, "Chapter document must be a PDF")
		return
	}

	var style *generation.Document
	if doc, err := readDocument(r, styleField); err == nil {
		if doc.MIMEType != pdfMIMEType && !strings.HasPrefix(doc.MIMEType, "image/") {
			shared.RespondWithError(w, r, http.StatusUnsupportedMediaType, "Style sample must be a PDF or an image")
			return
		}
		style = &doc
	}

	session, err := h.service.StartGeneration(r.Context(), chapter, style)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	status := session.Snapshot()
	shared.RespondWithJSON(w, r, http.StatusAccepted, CreateDeckResponse{
		SessionID: session.ID().String(),
		State:     string(status.State),
		Progress:  status.Progress,
	})
}

// GetDeck handles GET /decks/{id} requests, reporting generation progress
// and, once available, the deck itself.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromPath(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, statusToResponse(session.ID().String(), session.Snapshot()))
}

// ExportDeck handles GET /decks/{id}/export requests, streaming the deck as
// a PowerPoint download.
func (h *DeckHandler) ExportDeck(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idFromPath(w, r)
	if !ok {
		return
	}

	session, err := h.service.ReadyDeck(id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	artifact, err := h.exporter.Export(session.Deck())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to export deck", err)
		return
	}

	h.logger.Info("deck exported",
		slog.String("session_id", id.String()),
		slog.String("filename", artifact.Filename),
		slog.Int("bytes", len(artifact.Data)))

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		h.logger.Error("failed to write export response", "error", err)
	}
}

// Navigate handles POST /decks/{id}/navigate requests, moving the viewer
// one slide forward or back.
func (h *DeckHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	view, ok := h.viewerFromPath(w, r)
	if !ok {
		return
	}

	var req NavigateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Direction must be next or prev")
		return
	}

	var moved bool
	if req.Direction == "next" {
		moved = view.Next()
	} else {
		moved = view.Prev()
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NavigateResponse{
		Index: view.Index(),
		Moved: moved,
		Slide: slideToResponse(view.Current()),
	})
}

// Answer handles POST /decks/{id}/answers requests, recording a quiz answer
// and revealing the outcome.
func (h *DeckHandler) Answer(w http.ResponseWriter, r *http.Request) {
	view, ok := h.viewerFromPath(w, r)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "A slide ID and an option between 0 and 3 are required")
		return
	}

	reveal, err := view.SelectOption(req.SlideID, *req.Option)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, revealToResponse(reveal))
}

// DeleteDeck handles DELETE /decks/{id} requests, discarding the session.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idFromPath(w, r)
	if !ok {
		return
	}

	if err := h.service.Discard(id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DeckHandler) idFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *DeckHandler) sessionFromPath(w http.ResponseWriter, r *http.Request) (*service.Session, bool) {
	id, ok := h.idFromPath(w, r)
	if !ok {
		return nil, false
	}
	session, err := h.service.GetSession(id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return nil, false
	}
	return session, true
}

func (h *DeckHandler) viewerFromPath(w http.ResponseWriter, r *http.Request) (*viewer.Viewer, bool) {
	id, ok := h.idFromPath(w, r)
	if !ok {
		return nil, false
	}
	session, err := h.service.ReadyDeck(id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return nil, false
	}
	return session.Viewer(), true
}

// readDocument extracts one uploaded file from the multipart form.
func readDocument(r *http.Request, field string) (generation.Document, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return generation.Document{}, err
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return generation.Document{}, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if len(data) == 0 {
		return generation.Document{}, errors.New("uploaded file is empty")
	}
	return generation.Document{
		Data:     data,
		MIMEType: documentMIMEType(header),
	}, nil
}

func documentMIMEType(header *multipart.FileHeader) string {
	ct := header.Header.Get("Content-Type")
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(strings.ToLower(ct))
}
