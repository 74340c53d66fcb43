package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/soundem/soundem/internal/domain/entity"
)

func newTestCatalogService(songs map[int64]entity.Song) *CatalogService {
	return NewCatalogService(&stubCatalogRepo{songs: songs}, nil, nil, nil, "", nil, "", 0)
}

func TestCatalogStats_WithoutCache(t *testing.T) {
	svc := newTestCatalogService(map[int64]entity.Song{
		1: {ID: 1, Name: "one", Duration: 120, AlbumID: 1},
		2: {ID: 2, Name: "two", Duration: 185, AlbumID: 1},
	})

	st, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if st.Songs != 2 {
		t.Errorf("Stats.Songs = %d; want 2", st.Songs)
	}
	if st.TotalDuration != 305 {
		t.Errorf("Stats.TotalDuration = %d; want 305", st.TotalDuration)
	}
}

func TestGetSong_NotFound(t *testing.T) {
	svc := newTestCatalogService(map[int64]entity.Song{1: {ID: 1, Name: "one"}})

	if _, err := svc.GetSong(context.Background(), 99); !errors.Is(err, ErrSongNotFound) {
		t.Errorf("GetSong error = %v; want ErrSongNotFound", err)
	}
	song, err := svc.GetSong(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetSong returned error: %v", err)
	}
	if song.ID != 1 {
		t.Errorf("GetSong returned song %d; want 1", song.ID)
	}
}

func TestGetAlbum_NotFound(t *testing.T) {
	svc := newTestCatalogService(nil)

	if _, _, err := svc.GetAlbum(context.Background(), 1); !errors.Is(err, ErrAlbumNotFound) {
		t.Errorf("GetAlbum error = %v; want ErrAlbumNotFound", err)
	}
}

func TestGetArtist_NotFound(t *testing.T) {
	svc := newTestCatalogService(nil)

	if _, err := svc.GetArtist(context.Background(), 1); !errors.Is(err, ErrArtistNotFound) {
		t.Errorf("GetArtist error = %v; want ErrArtistNotFound", err)
	}
}

func TestSearchSongs_WithoutIndex(t *testing.T) {
	svc := newTestCatalogService(nil)

	hits, err := svc.SearchSongs(context.Background(), "anything", 10)
	if err != nil {
		t.Fatalf("SearchSongs returned error: %v", err)
	}
	if hits == nil || len(hits) != 0 {
		t.Errorf("SearchSongs = %v; want empty non-nil slice", hits)
	}
}

func TestUploadArtwork_WithoutStorage(t *testing.T) {
	svc := newTestCatalogService(nil)

	_, err := svc.UploadArtwork(context.Background(), 1, strings.NewReader("png"), "cover.png", "image/png")
	if err == nil {
		t.Fatal("UploadArtwork succeeded without configured storage")
	}
}

func TestIndexSong_WithoutIndex(t *testing.T) {
	svc := newTestCatalogService(nil)

	if err := svc.IndexSong(context.Background(), &entity.Song{ID: 1, Name: "one"}); err != nil {
		t.Errorf("IndexSong returned error with no index configured: %v", err)
	}
}
