package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"anicards-backend/internal/cache"
	"anicards-backend/internal/models"
	"anicards-backend/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// StoreCardsRequest is the card onboarding payload.
type StoreCardsRequest struct {
	UserID   int64         `json:"userId" binding:"required"`
	Username string        `json:"username" binding:"required"`
	Cards    []models.Card `json:"cards" binding:"required,min=1,dive"`
}

// CardHandler serves the card-configuration records written by the
// onboarding flow and read by the renderer.
type CardHandler struct {
	store store.Store
	cards *cache.CardCache
	log   *zap.Logger
}

func NewCardHandler(st store.Store, cards *cache.CardCache, log *zap.Logger) *CardHandler {
	return &CardHandler{
		store: st,
		cards: cards,
		log:   log,
	}
}

// StoreCards persists a user's card configuration and username index.
// @Summary Store card configuration for a user
// @Tags cards
// @Accept json
// @Produce json
// @Param request body StoreCardsRequest true "Card configuration"
// @Success 200 {object} models.CardsRecord
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/cards/store [post]
func (h *CardHandler) StoreCards(c *gin.Context) {
	var req StoreCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	record := models.CardsRecord{
		UserID:    req.UserID,
		Cards:     req.Cards,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	encoded, err := json.Marshal(record)
	if err != nil {
		h.log.Error("failed to encode cards record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to store cards"})
		return
	}
	ctx := c.Request.Context()
	if err := h.store.Set(ctx, models.CardsKey(req.UserID), string(encoded)); err != nil {
		h.log.Error("failed to store cards record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to store cards"})
		return
	}
	if err := h.store.Set(ctx, models.UsernameKey(req.Username), strconv.FormatInt(req.UserID, 10)); err != nil {
		h.log.Error("failed to store username index", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to store cards"})
		return
	}
	h.cards.Invalidate(req.UserID)

	c.JSON(http.StatusOK, record)
}

// GetCards returns a user's card configuration through the read cache.
// @Summary Get card configuration for a user
// @Tags cards
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} models.CardsRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/cards/{userId} [get]
func (h *CardHandler) GetCards(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user ID"})
		return
	}

	value, err := h.cards.Get(c.Request.Context(), userID)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Cards not found"})
			return
		}
		h.log.Error("failed to load cards record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load cards"})
		return
	}
	c.Data(http.StatusOK, "application/json", []byte(value))
}

// GetUser returns the decoded user record.
// @Summary Get the stored profile record for a user
// @Tags users
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/users/{userId} [get]
func (h *CardHandler) GetUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user ID"})
		return
	}

	value, err := h.store.Get(c.Request.Context(), models.UserKey(userID))
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
			return
		}
		h.log.Error("failed to load user record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load user"})
		return
	}
	c.Data(http.StatusOK, "application/json", []byte(value))
}
