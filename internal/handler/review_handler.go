package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"shopfront/internal/model"
	"shopfront/internal/review"
)

// ReviewHandler handles product rating requests.
type ReviewHandler struct {
	reviews *review.Store
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviews *review.Store, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviews: reviews,
		logger:  logger.With().Str("handler", "review").Logger(),
	}
}

// SetRating handles PUT /api/reviews/{productID}.
func (h *ReviewHandler) SetRating(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeProductNotFound, "invalid product ID", h.logger)
		return
	}

	var req struct {
		Rating int `json:"rating"`
	}
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	if err := h.reviews.Set(productID, req.Rating); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"productId": productID, "rating": req.Rating})
}

// GetRatings handles GET /api/reviews.
func (h *ReviewHandler) GetRatings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.reviews.All())
}
