package application

import (
	"context"
	"errors"
	"testing"

	"github.com/soundem/soundem/internal/domain/entity"
	repo "github.com/soundem/soundem/internal/domain/repository"
)

// fakeFavoriteRepo is an in-memory set keyed by (user, song), mirroring the
// UNIQUE(user_id, song_id) behavior of the real table.
type fakeFavoriteRepo struct {
	rows map[[2]int64]bool
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{rows: make(map[[2]int64]bool)}
}

func (f *fakeFavoriteRepo) Add(ctx context.Context, userID, songID int64) error {
	f.rows[[2]int64{userID, songID}] = true
	return nil
}

func (f *fakeFavoriteRepo) Remove(ctx context.Context, userID, songID int64) error {
	delete(f.rows, [2]int64{userID, songID})
	return nil
}

func (f *fakeFavoriteRepo) Exists(ctx context.Context, userID, songID int64) (bool, error) {
	return f.rows[[2]int64{userID, songID}], nil
}

func (f *fakeFavoriteRepo) ListSongs(ctx context.Context, userID int64) ([]entity.Song, error) {
	songs := make([]entity.Song, 0)
	for _, id := range sortedSongIDs(f.rows, userID) {
		songs = append(songs, entity.Song{ID: id, Name: "song"})
	}
	return songs, nil
}

func (f *fakeFavoriteRepo) ListSongIDs(ctx context.Context, userID int64) ([]int64, error) {
	return sortedSongIDs(f.rows, userID), nil
}

func sortedSongIDs(rows map[[2]int64]bool, userID int64) []int64 {
	ids := make([]int64, 0)
	for k := range rows {
		if k[0] == userID {
			ids = append(ids, k[1])
		}
	}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if ids[j] < ids[i] {
				ids[i], ids[j] = ids[j], ids[i]
			}
		}
	}
	return ids
}

// stubCatalogRepo knows a fixed set of songs and nothing else.
type stubCatalogRepo struct {
	songs map[int64]entity.Song
}

func (s *stubCatalogRepo) ListArtists(ctx context.Context) ([]entity.Artist, error) { return nil, nil }
func (s *stubCatalogRepo) GetArtist(ctx context.Context, id int64) (*entity.Artist, error) {
	return nil, repo.ErrNotFound
}
func (s *stubCatalogRepo) ListAlbums(ctx context.Context) ([]entity.Album, error) { return nil, nil }
func (s *stubCatalogRepo) GetAlbum(ctx context.Context, id int64) (*entity.Album, error) {
	return nil, repo.ErrNotFound
}
func (s *stubCatalogRepo) ListAlbumSongs(ctx context.Context, albumID int64) ([]entity.Song, error) {
	return nil, nil
}
func (s *stubCatalogRepo) UpdateAlbumArtwork(ctx context.Context, id int64, artworkURL string) error {
	return repo.ErrNotFound
}
func (s *stubCatalogRepo) ListSongs(ctx context.Context) ([]entity.Song, error) {
	out := make([]entity.Song, 0, len(s.songs))
	for _, song := range s.songs {
		out = append(out, song)
	}
	return out, nil
}
func (s *stubCatalogRepo) GetSong(ctx context.Context, id int64) (*entity.Song, error) {
	if song, ok := s.songs[id]; ok {
		return &song, nil
	}
	return nil, repo.ErrNotFound
}
func (s *stubCatalogRepo) CountAlbums(ctx context.Context) (int64, error) { return 0, nil }
func (s *stubCatalogRepo) CountSongs(ctx context.Context) (int64, error) {
	return int64(len(s.songs)), nil
}
func (s *stubCatalogRepo) TotalDuration(ctx context.Context) (int64, error) {
	var total int64
	for _, song := range s.songs {
		total += int64(song.Duration)
	}
	return total, nil
}

func newTestFavoriteService(songIDs ...int64) (*FavoriteService, *fakeFavoriteRepo) {
	songs := make(map[int64]entity.Song, len(songIDs))
	for _, id := range songIDs {
		songs[id] = entity.Song{ID: id, Name: "song", AlbumID: 1}
	}
	fav := newFakeFavoriteRepo()
	return NewFavoriteService(fav, &stubCatalogRepo{songs: songs}), fav
}

func TestSetFavorite_Idempotent(t *testing.T) {
	svc, fav := newTestFavoriteService(1)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		got, err := svc.SetFavorite(ctx, 10, 1, true)
		if err != nil {
			t.Fatalf("SetFavorite(true) #%d returned error: %v", i+1, err)
		}
		if !got {
			t.Errorf("SetFavorite(true) #%d = false; want true", i+1)
		}
	}
	if len(fav.rows) != 1 {
		t.Errorf("favorite rows = %d after double add; want exactly 1", len(fav.rows))
	}

	for i := 0; i < 2; i++ {
		got, err := svc.SetFavorite(ctx, 10, 1, false)
		if err != nil {
			t.Fatalf("SetFavorite(false) #%d returned error: %v", i+1, err)
		}
		if got {
			t.Errorf("SetFavorite(false) #%d = true; want false", i+1)
		}
	}
	if len(fav.rows) != 0 {
		t.Errorf("favorite rows = %d after double remove; want 0", len(fav.rows))
	}
}

func TestSetFavorite_UnknownSong(t *testing.T) {
	svc, _ := newTestFavoriteService(1)

	_, err := svc.SetFavorite(context.Background(), 10, 99, true)
	if !errors.Is(err, ErrSongNotFound) {
		t.Errorf("SetFavorite error = %v; want ErrSongNotFound", err)
	}
}

func TestIsFavorited_TracksState(t *testing.T) {
	svc, _ := newTestFavoriteService(1, 2)
	ctx := context.Background()

	if fav, _ := svc.IsFavorited(ctx, 10, 1); fav {
		t.Error("IsFavorited = true before any SetFavorite")
	}
	if _, err := svc.SetFavorite(ctx, 10, 1, true); err != nil {
		t.Fatalf("SetFavorite returned error: %v", err)
	}
	if fav, _ := svc.IsFavorited(ctx, 10, 1); !fav {
		t.Error("IsFavorited = false after favoriting")
	}
	if fav, _ := svc.IsFavorited(ctx, 10, 2); fav {
		t.Error("IsFavorited = true for a song never favorited")
	}
	if _, err := svc.SetFavorite(ctx, 10, 1, false); err != nil {
		t.Fatalf("SetFavorite returned error: %v", err)
	}
	if fav, _ := svc.IsFavorited(ctx, 10, 1); fav {
		t.Error("IsFavorited = true after unfavoriting")
	}
}

func TestListFavoriteSongs(t *testing.T) {
	svc, _ := newTestFavoriteService(1, 2, 3)
	ctx := context.Background()

	songs, err := svc.ListFavoriteSongs(ctx, 10)
	if err != nil {
		t.Fatalf("ListFavoriteSongs returned error: %v", err)
	}
	if len(songs) != 0 {
		t.Errorf("ListFavoriteSongs = %d songs for a fresh user; want 0", len(songs))
	}

	if _, err := svc.SetFavorite(ctx, 10, 2, true); err != nil {
		t.Fatalf("SetFavorite returned error: %v", err)
	}
	songs, err = svc.ListFavoriteSongs(ctx, 10)
	if err != nil {
		t.Fatalf("ListFavoriteSongs returned error: %v", err)
	}
	if len(songs) != 1 || songs[0].ID != 2 {
		t.Errorf("ListFavoriteSongs = %+v; want exactly song 2", songs)
	}

	// Another user's ledger is untouched.
	songs, _ = svc.ListFavoriteSongs(ctx, 11)
	if len(songs) != 0 {
		t.Errorf("ListFavoriteSongs for other user = %d songs; want 0", len(songs))
	}
}

func TestFavoriteIDSet(t *testing.T) {
	svc, _ := newTestFavoriteService(1, 2, 3)
	ctx := context.Background()

	if _, err := svc.SetFavorite(ctx, 10, 1, true); err != nil {
		t.Fatalf("SetFavorite returned error: %v", err)
	}
	if _, err := svc.SetFavorite(ctx, 10, 3, true); err != nil {
		t.Fatalf("SetFavorite returned error: %v", err)
	}

	set, err := svc.FavoriteIDSet(ctx, 10)
	if err != nil {
		t.Fatalf("FavoriteIDSet returned error: %v", err)
	}
	if !set[1] || set[2] || !set[3] {
		t.Errorf("FavoriteIDSet = %v; want {1, 3}", set)
	}
}
