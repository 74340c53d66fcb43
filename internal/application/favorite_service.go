package application

import (
	"context"
	"errors"

	"github.com/soundem/soundem/internal/domain/entity"
	repo "github.com/soundem/soundem/internal/domain/repository"
)

var ErrSongNotFound = errors.New("song not found")

// FavoriteService is the favorite ledger: the user/song relation behaves as
// a set, so setting and clearing are idempotent.
type FavoriteService struct {
	Favorites repo.FavoriteRepository
	Catalog   repo.CatalogRepository
}

func NewFavoriteService(fav repo.FavoriteRepository, cat repo.CatalogRepository) *FavoriteService {
	return &FavoriteService{Favorites: fav, Catalog: cat}
}

// SetFavorite moves the (user, song) pair to the wanted state and returns
// it. Repeating a call changes nothing; the returned state always equals
// want on success.
func (s *FavoriteService) SetFavorite(ctx context.Context, userID, songID int64, want bool) (bool, error) {
	if _, err := s.Catalog.GetSong(ctx, songID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrSongNotFound
		}
		return false, err
	}
	if want {
		if err := s.Favorites.Add(ctx, userID, songID); err != nil {
			return false, err
		}
		return true, nil
	}
	if err := s.Favorites.Remove(ctx, userID, songID); err != nil {
		return false, err
	}
	return false, nil
}

// IsFavorited reports whether the (user, song) row currently exists.
func (s *FavoriteService) IsFavorited(ctx context.Context, userID, songID int64) (bool, error) {
	return s.Favorites.Exists(ctx, userID, songID)
}

// ListFavoriteSongs resolves the user's favorites to songs. No favorites
// yields an empty slice.
func (s *FavoriteService) ListFavoriteSongs(ctx context.Context, userID int64) ([]entity.Song, error) {
	return s.Favorites.ListSongs(ctx, userID)
}

// FavoriteIDSet returns the user's favorited song ids as a set, used to
// decorate catalog listings.
func (s *FavoriteService) FavoriteIDSet(ctx context.Context, userID int64) (map[int64]bool, error) {
	ids, err := s.Favorites.ListSongIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
