package repository

import (
	"context"

	"github.com/soundem/soundem/internal/domain/entity"
)

// CatalogRepository serves the read-mostly artist/album/song catalog.
type CatalogRepository interface {
	ListArtists(ctx context.Context) ([]entity.Artist, error)
	GetArtist(ctx context.Context, id int64) (*entity.Artist, error)

	ListAlbums(ctx context.Context) ([]entity.Album, error)
	GetAlbum(ctx context.Context, id int64) (*entity.Album, error)
	ListAlbumSongs(ctx context.Context, albumID int64) ([]entity.Song, error)
	UpdateAlbumArtwork(ctx context.Context, id int64, artworkURL string) error

	ListSongs(ctx context.Context) ([]entity.Song, error)
	GetSong(ctx context.Context, id int64) (*entity.Song, error)

	CountAlbums(ctx context.Context) (int64, error)
	CountSongs(ctx context.Context) (int64, error)
	// TotalDuration sums song durations in seconds across the catalog.
	TotalDuration(ctx context.Context) (int64, error)
}

// FavoriteRepository maintains the user/song favorite relation. The store
// guarantees at most one row per (user, song) pair even under concurrent adds.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, songID int64) error
	Remove(ctx context.Context, userID, songID int64) error
	Exists(ctx context.Context, userID, songID int64) (bool, error)
	ListSongs(ctx context.Context, userID int64) ([]entity.Song, error)
	ListSongIDs(ctx context.Context, userID int64) ([]int64, error)
}
