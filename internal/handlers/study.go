package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"stamina-backend/internal/middleware"
	"stamina-backend/internal/models"
	"stamina-backend/internal/repository"
)

type StudyHandler struct {
	staminaRepo *repository.StaminaRepo
	deckRepo    *repository.DeckRepo
}

func NewStudyHandler(staminaRepo *repository.StaminaRepo, deckRepo *repository.DeckRepo) *StudyHandler {
	return &StudyHandler{staminaRepo: staminaRepo, deckRepo: deckRepo}
}

// RecordCompletion stores one swipe outcome. Skips count as activity but
// only learned cards advance the aggregate totals, which happens at
// session finish.
func (h *StudyHandler) RecordCompletion(w http.ResponseWriter, r *http.Request) {
	var req models.RecordCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.DeckID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "deck_id is required", r))
		return
	}
	if req.CardID == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "card_id is required", r))
		return
	}
	if req.Action != models.ActionLearned && req.Action != models.ActionSkipped {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "action must be learned or skipped", r))
		return
	}

	completion := &models.CardCompletion{
		UserID: middleware.GetUserID(r.Context()),
		DeckID: req.DeckID,
		CardID: req.CardID,
		Action: req.Action,
	}

	if err := h.staminaRepo.RecordCompletion(r.Context(), completion); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to record completion", r))
		return
	}

	writeJSON(w, http.StatusCreated, completion)
}

// FinishSession folds a completed study session into the stamina record
// and returns the updated aggregate so the client can show streak and
// totals immediately.
func (h *StudyHandler) FinishSession(w http.ResponseWriter, r *http.Request) {
	var req models.FinishSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.CardsLearned < 0 || req.WordsLearned < 0 || req.MinutesSpent < 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Session counts cannot be negative", r))
		return
	}

	userID := middleware.GetUserID(r.Context())

	stamina, err := h.staminaRepo.ApplyActivity(r.Context(), userID, req.CardsLearned, req.WordsLearned, req.MinutesSpent)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update stamina", r))
		return
	}

	writeJSON(w, http.StatusOK, stamina)
}

func (h *StudyHandler) GetStamina(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	stamina, err := h.staminaRepo.Get(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch stamina", r))
		return
	}
	if stamina == nil {
		// No activity yet: zero record, not an error
		stamina = &models.UserStamina{UserID: userID}
	}

	writeJSON(w, http.StatusOK, stamina)
}

func (h *StudyHandler) GetBadges(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	stamina, err := h.staminaRepo.Get(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch stamina", r))
		return
	}

	deckCount, err := h.deckRepo.CountByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch decks", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"badges": models.BadgesFor(stamina, deckCount),
	})
}

func (h *StudyHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	activity, err := h.staminaRepo.WeeklyActivity(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch activity", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"completions_by_day": activity,
	})
}
