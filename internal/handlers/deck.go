package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"stamina-backend/internal/middleware"
	"stamina-backend/internal/models"
	"stamina-backend/internal/repository"
	"stamina-backend/internal/services"
	"stamina-backend/internal/worker"
)

const maxUploadBytes = 20 * 1024 * 1024 // 20MB

type DeckHandler struct {
	deckRepo    *repository.DeckRepo
	jobRepo     *repository.JobRepo
	redis       *redis.Client
	storagePath string
	allowedExts map[string]bool
}

func NewDeckHandler(deckRepo *repository.DeckRepo, jobRepo *repository.JobRepo, redisClient *redis.Client, fileExtract *services.FileExtractService, storagePath string) *DeckHandler {
	allowed := make(map[string]bool)
	for _, ext := range fileExtract.SupportedExtensions() {
		allowed[ext] = true
	}
	return &DeckHandler{
		deckRepo:    deckRepo,
		jobRepo:     jobRepo,
		redis:       redisClient,
		storagePath: storagePath,
		allowedExts: allowed,
	}
}

// Generate validates the request and enqueues a deck-generation job. The
// deck ID is minted here so the client can correlate the eventual
// websocket events with this response.
func (h *DeckHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	req.URL = strings.TrimSpace(req.URL)

	if (req.Text == "") == (req.URL == "") {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Provide exactly one of text or url", r))
		return
	}
	if req.URL != "" && !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "url must be an http(s) URL", r))
		return
	}

	if req.Vibe == "" {
		req.Vibe = models.VibeStudent
	}
	if !models.ValidVibe(req.Vibe) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "vibe must be kid, student, or pro", r))
		return
	}

	if req.Difficulty == "" {
		req.Difficulty = models.DifficultyAuto
	}
	if req.Difficulty != models.DifficultyAuto && !models.ValidDifficulty(req.Difficulty) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "difficulty must be beginner, intermediate, advanced, or auto", r))
		return
	}

	origin := models.OriginPasted
	if req.URL != "" {
		origin = models.OriginURL
	}

	h.enqueueGeneration(w, r, uuid.New(), worker.DeckJobConfig{
		Text:       req.Text,
		URL:        req.URL,
		Origin:     origin,
		Vibe:       req.Vibe,
		Difficulty: req.Difficulty,
	})
}

// Upload accepts a .txt, .md, or .pdf source file and enqueues deck
// generation against it. The file is kept under the storage path until
// the worker extracts its text.
func (h *DeckHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > maxUploadBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("VALIDATION_ERROR", "File size exceeds 20MB limit", r))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No file provided", r))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !h.allowedExts[ext] {
		writeJSON(w, http.StatusUnsupportedMediaType, errorResp("VALIDATION_ERROR", "Only .txt, .md, and .pdf files are supported", r))
		return
	}

	vibe := strings.TrimSpace(r.FormValue("vibe"))
	if vibe == "" {
		vibe = models.VibeStudent
	}
	if !models.ValidVibe(vibe) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "vibe must be kid, student, or pro", r))
		return
	}

	difficulty := strings.TrimSpace(r.FormValue("difficulty"))
	if difficulty == "" {
		difficulty = models.DifficultyAuto
	}
	if difficulty != models.DifficultyAuto && !models.ValidDifficulty(difficulty) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "difficulty must be beginner, intermediate, advanced, or auto", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	deckID := uuid.New()

	// The deck ID doubles as the stored filename so orphaned uploads are
	// easy to trace back to their job.
	relPath := filepath.Join("users", userID.String(), "uploads", deckID.String()+ext)
	fullPath := filepath.Join(h.storagePath, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to store file", r))
		return
	}
	dst, err := os.Create(fullPath)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to store file", r))
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to store file", r))
		return
	}
	dst.Close()

	h.enqueueGeneration(w, r, deckID, worker.DeckJobConfig{
		FilePath:   relPath,
		Origin:     models.OriginFile,
		Vibe:       vibe,
		Difficulty: difficulty,
	})
}

func (h *DeckHandler) enqueueGeneration(w http.ResponseWriter, r *http.Request, deckID uuid.UUID, cfg worker.DeckJobConfig) {
	configBytes, _ := json.Marshal(cfg)

	job := &models.Job{
		UserID:      middleware.GetUserID(r.Context()),
		Type:        "deck-generation",
		ReferenceID: deckID,
		ConfigJSON:  configBytes,
	}

	if err := h.jobRepo.Create(r.Context(), job); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create job", r))
		return
	}

	jobBytes, _ := json.Marshal(job)
	h.redis.LPush(r.Context(), worker.DeckQueue, string(jobBytes))

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id":  job.ID,
		"deck_id": deckID,
	})
}

func (h *DeckHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	decks, err := h.deckRepo.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch decks", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"decks": decks})
}

func (h *DeckHandler) Get(w http.ResponseWriter, r *http.Request) {
	deckID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	userID := middleware.GetUserID(r.Context())

	deck, err := h.deckRepo.GetByID(r.Context(), deckID)
	if err != nil {
		if err == pgx.ErrNoRows {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch deck", r))
		return
	}
	if deck.UserID != userID {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return
	}

	writeJSON(w, http.StatusOK, deck)
}

func (h *DeckHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deckID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	userID := middleware.GetUserID(r.Context())

	deleted, err := h.deckRepo.Delete(r.Context(), deckID, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete deck", r))
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Deck deleted"})
}

func (h *DeckHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	deckID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	var req models.UpdateDeckTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Title is required", r))
		return
	}

	userID := middleware.GetUserID(r.Context())

	updated, err := h.deckRepo.UpdateTitle(r.Context(), deckID, userID, req.Title)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update deck", r))
		return
	}
	if !updated {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Title updated"})
}
