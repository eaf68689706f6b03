package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/model"
	"shopfront/internal/review"
)

func newReviewRouter(t *testing.T) http.Handler {
	t.Helper()

	store, err := review.NewStore(filepath.Join(t.TempDir(), "ratings.json"), zerolog.Nop())
	require.NoError(t, err)

	h := NewReviewHandler(store, zerolog.Nop())
	r := chi.NewRouter()
	r.Get("/api/reviews", h.GetRatings)
	r.Put("/api/reviews/{productID}", h.SetRating)
	return r
}

func TestReviewHandler_SetAndGet(t *testing.T) {
	router := newReviewRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/reviews/3", strings.NewReader(`{"rating": 4}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var ratings map[int]review.Rating
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ratings))
	assert.Equal(t, 4, ratings[3].Rating)
}

func TestReviewHandler_SetRating_OutOfRange(t *testing.T) {
	router := newReviewRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/reviews/3", strings.NewReader(`{"rating": 6}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.ErrCodeInvalidRating, resp.Error)
}

func TestReviewHandler_SetRating_BadProductID(t *testing.T) {
	router := newReviewRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/reviews/abc", strings.NewReader(`{"rating": 4}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewHandler_GetRatings_Empty(t *testing.T) {
	router := newReviewRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}
