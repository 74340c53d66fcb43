package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/soundem/soundem/internal/application"
	"github.com/soundem/soundem/internal/interface/middleware"
	"github.com/soundem/soundem/pkg/response"
	"github.com/soundem/soundem/pkg/validation"
)

type FavoriteHandler struct {
	Svc    *application.FavoriteService
	Logger *logrus.Logger
}

func NewFavoriteHandler(svc *application.FavoriteService, logger *logrus.Logger) *FavoriteHandler {
	return &FavoriteHandler{Svc: svc, Logger: logger}
}

type setFavoriteRequest struct {
	Favorite *bool `json:"favorite" binding:"required"`
}

// SetFavorite moves a song in or out of the caller's favorites. The call is
// idempotent; the response reports the resulting state.
func (h *FavoriteHandler) SetFavorite(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	songID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req setFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Favorite == nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	favorited, err := h.Svc.SetFavorite(c.Request.Context(), uid, songID, *req.Favorite)
	if err != nil {
		if errors.Is(err, application.ErrSongNotFound) {
			response.Fail(c, http.StatusNotFound, "song not found", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("song_id", songID).Error("set favorite failed")
		}
		response.Fail(c, http.StatusInternalServerError, "failed to set favorite", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"favorited": favorited}, "favorite updated", nil)
}

// ListFavorites returns the caller's favorited songs; empty list when none.
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	songs, err := h.Svc.ListFavoriteSongs(c.Request.Context(), uid)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to list favorites", nil)
		return
	}
	fav := true
	out := make([]gin.H, 0, len(songs))
	for _, s := range songs {
		out = append(out, songPayload(s, &fav))
	}
	response.Success(c, http.StatusOK, gin.H{"songs": out}, "favorites", nil)
}
