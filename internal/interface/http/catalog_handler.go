package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/soundem/soundem/internal/application"
	"github.com/soundem/soundem/internal/domain/entity"
	"github.com/soundem/soundem/internal/interface/middleware"
	"github.com/soundem/soundem/pkg/response"
)

type CatalogHandler struct {
	Svc       *application.CatalogService
	Favorites *application.FavoriteService
	Logger    *logrus.Logger
}

func NewCatalogHandler(svc *application.CatalogService, fav *application.FavoriteService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Favorites: fav, Logger: logger}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, "invalid id", nil)
		return 0, false
	}
	return id, true
}

func artistPayload(a entity.Artist) gin.H {
	return gin.H{"id": a.ID, "name": a.Name, "bio": a.Bio}
}

func albumPayload(a entity.Album) gin.H {
	return gin.H{"id": a.ID, "name": a.Name, "artwork_url": a.ArtworkURL, "artist_id": a.ArtistID}
}

func songPayload(s entity.Song, favorited *bool) gin.H {
	p := gin.H{
		"id":       s.ID,
		"name":     s.Name,
		"url":      s.URL,
		"duration": s.Duration,
		"album_id": s.AlbumID,
	}
	if favorited != nil {
		p["favorited"] = *favorited
	}
	return p
}

func (h *CatalogHandler) ListArtists(c *gin.Context) {
	artists, err := h.Svc.ListArtists(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to list artists", nil)
		return
	}
	out := make([]gin.H, 0, len(artists))
	for _, a := range artists {
		out = append(out, artistPayload(a))
	}
	response.Success(c, http.StatusOK, gin.H{"artists": out}, "artists", nil)
}

func (h *CatalogHandler) GetArtist(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := h.Svc.GetArtist(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrArtistNotFound) {
			response.Fail(c, http.StatusNotFound, "artist not found", nil)
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to get artist", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"artist": artistPayload(*a)}, "artist", nil)
}

func (h *CatalogHandler) ListAlbums(c *gin.Context) {
	albums, err := h.Svc.ListAlbums(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to list albums", nil)
		return
	}
	out := make([]gin.H, 0, len(albums))
	for _, a := range albums {
		out = append(out, albumPayload(a))
	}
	response.Success(c, http.StatusOK, gin.H{"albums": out}, "albums", nil)
}

func (h *CatalogHandler) GetAlbum(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, songs, err := h.Svc.GetAlbum(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrAlbumNotFound) {
			response.Fail(c, http.StatusNotFound, "album not found", nil)
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to get album", nil)
		return
	}
	songsOut := make([]gin.H, 0, len(songs))
	for _, s := range songs {
		songsOut = append(songsOut, songPayload(s, nil))
	}
	payload := albumPayload(*a)
	payload["songs"] = songsOut
	response.Success(c, http.StatusOK, gin.H{"album": payload}, "album", nil)
}

// ListSongs returns the full catalog. When the request carries a valid
// token each song also reports whether that user favorited it.
func (h *CatalogHandler) ListSongs(c *gin.Context) {
	ctx := c.Request.Context()
	songs, err := h.Svc.ListSongs(ctx)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to list songs", nil)
		return
	}

	var favSet map[int64]bool
	if uid, ok := middleware.UserID(c); ok {
		favSet, err = h.Favorites.FavoriteIDSet(ctx, uid)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "failed to list songs", nil)
			return
		}
	}

	out := make([]gin.H, 0, len(songs))
	for _, s := range songs {
		if favSet != nil {
			fav := favSet[s.ID]
			out = append(out, songPayload(s, &fav))
		} else {
			out = append(out, songPayload(s, nil))
		}
	}
	response.Success(c, http.StatusOK, gin.H{"songs": out}, "songs", nil)
}

func (h *CatalogHandler) GetSong(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	s, err := h.Svc.GetSong(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrSongNotFound) {
			response.Fail(c, http.StatusNotFound, "song not found", nil)
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to get song", nil)
		return
	}
	var favorited *bool
	if uid, ok := middleware.UserID(c); ok {
		fav, err := h.Favorites.IsFavorited(c.Request.Context(), uid, s.ID)
		if err == nil {
			favorited = &fav
		}
	}
	response.Success(c, http.StatusOK, gin.H{"song": songPayload(*s, favorited)}, "song", nil)
}

func (h *CatalogHandler) Stats(c *gin.Context) {
	st, err := h.Svc.Stats(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to compute stats", nil)
		return
	}
	response.Success(c, http.StatusOK, st, "catalog stats", nil)
}

// SearchSongs queries the Elasticsearch song index.
func (h *CatalogHandler) SearchSongs(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchSongs(c.Request.Context(), q, size)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": hits}, "search results", nil)
}

// UploadArtwork accepts a multipart "artwork" file and stores it in GCS.
func (h *CatalogHandler) UploadArtwork(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	file, header, err := c.Request.FormFile("artwork")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "missing artwork file", nil)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.Svc.UploadArtwork(c.Request.Context(), id, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, application.ErrAlbumNotFound) {
			response.Fail(c, http.StatusNotFound, "album not found", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("album_id", id).Error("artwork upload failed")
		}
		response.Fail(c, http.StatusInternalServerError, "artwork upload failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"artwork_url": url}, "artwork uploaded", nil)
}
