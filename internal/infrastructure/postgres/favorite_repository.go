package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soundem/soundem/internal/domain/entity"
	"github.com/soundem/soundem/internal/domain/repository"
)

// FavoriteRepository stores the user/song favorite relation. The
// favorites table carries UNIQUE(user_id, song_id), so duplicate
// prevention holds even when two adds race.
type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

// Add inserts the (user, song) row if absent. Re-adding is a no-op.
func (r *FavoriteRepository) Add(ctx context.Context, userID, songID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO favorites (user_id, song_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, song_id) DO NOTHING
	`, userID, songID)
	return err
}

// Remove deletes the (user, song) row. Removing a missing row is a no-op.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, songID int64) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM favorites
		WHERE user_id = $1 AND song_id = $2
	`, userID, songID)
	return err
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, songID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM favorites WHERE user_id = $1 AND song_id = $2
		)
	`, userID, songID).Scan(&exists)
	return exists, err
}

func (r *FavoriteRepository) ListSongs(ctx context.Context, userID int64) ([]entity.Song, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.name, COALESCE(s.url, ''), COALESCE(s.duration, 0), s.album_id
		FROM songs s
		JOIN favorites f ON f.song_id = s.id
		WHERE f.user_id = $1
		ORDER BY s.id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSongs(rows)
}

func (r *FavoriteRepository) ListSongIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT song_id FROM favorites WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

var _ repository.FavoriteRepository = (*FavoriteRepository)(nil)
