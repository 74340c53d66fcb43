package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/soundem/soundem/internal/domain/entity"
	repo "github.com/soundem/soundem/internal/domain/repository"
	"github.com/soundem/soundem/pkg/helpers"
)

var (
	ErrArtistNotFound = errors.New("artist not found")
	ErrAlbumNotFound  = errors.New("album not found")
)

// CatalogService serves artists, albums and songs. Redis, Elasticsearch and
// GCS are optional collaborators: when nil the service degrades to plain
// database reads, no search and no artwork uploads.
type CatalogService struct {
	Repo         repo.CatalogRepository
	Redis        *redis.Client
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESSongsIndex string
	GCS          *storage.Client
	GCSBucket    string
	StatsTTL     time.Duration
}

func NewCatalogService(r repo.CatalogRepository, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esSongsIndex string, gcs *storage.Client, gcsBucket string, statsTTL time.Duration) *CatalogService {
	return &CatalogService{
		Repo:         r,
		Redis:        rdb,
		Logger:       logger,
		ES:           es,
		ESSongsIndex: esSongsIndex,
		GCS:          gcs,
		GCSBucket:    gcsBucket,
		StatsTTL:     statsTTL,
	}
}

func (s *CatalogService) ListArtists(ctx context.Context) ([]entity.Artist, error) {
	return s.Repo.ListArtists(ctx)
}

func (s *CatalogService) GetArtist(ctx context.Context, id int64) (*entity.Artist, error) {
	a, err := s.Repo.GetArtist(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *CatalogService) ListAlbums(ctx context.Context) ([]entity.Album, error) {
	return s.Repo.ListAlbums(ctx)
}

// GetAlbum returns the album together with its songs.
func (s *CatalogService) GetAlbum(ctx context.Context, id int64) (*entity.Album, []entity.Song, error) {
	a, err := s.Repo.GetAlbum(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrAlbumNotFound
		}
		return nil, nil, err
	}
	songs, err := s.Repo.ListAlbumSongs(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return a, songs, nil
}

func (s *CatalogService) ListSongs(ctx context.Context) ([]entity.Song, error) {
	return s.Repo.ListSongs(ctx)
}

func (s *CatalogService) GetSong(ctx context.Context, id int64) (*entity.Song, error) {
	song, err := s.Repo.GetSong(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSongNotFound
		}
		return nil, err
	}
	return song, nil
}

// Stats summarizes the catalog.
type Stats struct {
	Albums        int64 `json:"albums"`
	Songs         int64 `json:"songs"`
	TotalDuration int64 `json:"total_duration"`
}

const statsCacheKey = "catalog:stats"

// Stats counts albums and songs and sums durations. The result is cached in
// Redis for StatsTTL; cache failures fall through to the database.
func (s *CatalogService) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	if s.Redis != nil {
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, statsCacheKey, &st); err == nil && ok {
			return st, nil
		}
	}

	albums, err := s.Repo.CountAlbums(ctx)
	if err != nil {
		return Stats{}, err
	}
	songs, err := s.Repo.CountSongs(ctx)
	if err != nil {
		return Stats{}, err
	}
	dur, err := s.Repo.TotalDuration(ctx)
	if err != nil {
		return Stats{}, err
	}
	st = Stats{Albums: albums, Songs: songs, TotalDuration: dur}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, statsCacheKey, st, s.StatsTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("stats cache write failed")
		}
	}
	return st, nil
}

// UploadArtwork stores album artwork in GCS and points the album at its
// public URL.
func (s *CatalogService) UploadArtwork(ctx context.Context, albumID int64, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("artwork storage not configured")
	}
	if _, err := s.Repo.GetAlbum(ctx, albumID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrAlbumNotFound
		}
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("artwork", uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Repo.UpdateAlbumArtwork(ctx, albumID, url); err != nil {
		return "", err
	}
	return url, nil
}

// IndexSong writes the song document, denormalized with album and artist
// names, into the search index. Failures are logged and swallowed so the
// catalog never depends on Elasticsearch being up.
func (s *CatalogService) IndexSong(ctx context.Context, song *entity.Song) error {
	if s.ES == nil || s.ESSongsIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":       song.ID,
		"name":     song.Name,
		"duration": song.Duration,
		"album_id": song.AlbumID,
	}
	if album, err := s.Repo.GetAlbum(ctx, song.AlbumID); err == nil {
		doc["album"] = album.Name
		if artist, err := s.Repo.GetArtist(ctx, album.ArtistID); err == nil {
			doc["artist"] = artist.Name
		}
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESSongsIndex,
		DocumentID: strconv.FormatInt(song.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("song_id", song.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("song_id", song.ID).Warn("es index response error")
	}
	return nil
}

// SearchSongs performs a multi_match search over song, album and artist
// names. Without a configured index it returns an empty result set.
func (s *CatalogService) SearchSongs(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESSongsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "album", "artist"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESSongsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
