package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soundem/soundem/internal/domain/entity"
	"github.com/soundem/soundem/internal/domain/repository"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) ListArtists(ctx context.Context) ([]entity.Artist, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, COALESCE(bio, '')
		FROM artists
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	artists := make([]entity.Artist, 0)
	for rows.Next() {
		var a entity.Artist
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio); err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

func (r *CatalogRepository) GetArtist(ctx context.Context, id int64) (*entity.Artist, error) {
	a := &entity.Artist{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(bio, '')
		FROM artists
		WHERE id = $1
	`, id)
	if err := row.Scan(&a.ID, &a.Name, &a.Bio); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *CatalogRepository) ListAlbums(ctx context.Context) ([]entity.Album, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, COALESCE(artwork_url, ''), artist_id
		FROM albums
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	albums := make([]entity.Album, 0)
	for rows.Next() {
		var a entity.Album
		if err := rows.Scan(&a.ID, &a.Name, &a.ArtworkURL, &a.ArtistID); err != nil {
			return nil, err
		}
		albums = append(albums, a)
	}
	return albums, rows.Err()
}

func (r *CatalogRepository) GetAlbum(ctx context.Context, id int64) (*entity.Album, error) {
	a := &entity.Album{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(artwork_url, ''), artist_id
		FROM albums
		WHERE id = $1
	`, id)
	if err := row.Scan(&a.ID, &a.Name, &a.ArtworkURL, &a.ArtistID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *CatalogRepository) ListAlbumSongs(ctx context.Context, albumID int64) ([]entity.Song, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, COALESCE(url, ''), COALESCE(duration, 0), album_id
		FROM songs
		WHERE album_id = $1
		ORDER BY id
	`, albumID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSongs(rows)
}

func (r *CatalogRepository) UpdateAlbumArtwork(ctx context.Context, id int64, artworkURL string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE albums
		SET artwork_url = $1
		WHERE id = $2
	`, artworkURL, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CatalogRepository) ListSongs(ctx context.Context) ([]entity.Song, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, COALESCE(url, ''), COALESCE(duration, 0), album_id
		FROM songs
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSongs(rows)
}

func (r *CatalogRepository) GetSong(ctx context.Context, id int64) (*entity.Song, error) {
	s := &entity.Song{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(url, ''), COALESCE(duration, 0), album_id
		FROM songs
		WHERE id = $1
	`, id)
	if err := row.Scan(&s.ID, &s.Name, &s.URL, &s.Duration, &s.AlbumID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *CatalogRepository) CountAlbums(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM albums`).Scan(&n)
	return n, err
}

func (r *CatalogRepository) CountSongs(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM songs`).Scan(&n)
	return n, err
}

func (r *CatalogRepository) TotalDuration(ctx context.Context) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(duration), 0) FROM songs`).Scan(&total)
	return total, err
}

func scanSongs(rows pgx.Rows) ([]entity.Song, error) {
	songs := make([]entity.Song, 0)
	for rows.Next() {
		var s entity.Song
		if err := rows.Scan(&s.ID, &s.Name, &s.URL, &s.Duration, &s.AlbumID); err != nil {
			return nil, err
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

var _ repository.CatalogRepository = (*CatalogRepository)(nil)
