package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/soundem/soundem/internal/application"
	"github.com/soundem/soundem/internal/domain/entity"
	repo "github.com/soundem/soundem/internal/domain/repository"
	"github.com/soundem/soundem/internal/interface/middleware"
	"github.com/soundem/soundem/pkg/helpers"
	"github.com/soundem/soundem/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

// memUserRepo is an in-memory UserRepository with the same uniqueness
// behavior as the users table.
type memUserRepo struct {
	nextID  int64
	byID    map[int64]*entity.User
	byEmail map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, byID: map[int64]*entity.User{}, byEmail: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, u *entity.User) error {
	if _, taken := r.byEmail[u.Email]; taken {
		return repo.ErrDuplicate
	}
	u.ID = r.nextID
	r.nextID++
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	if u, ok := r.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if u, ok := r.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (r *memUserRepo) UpdatePassword(ctx context.Context, id int64, digest string) error {
	u, ok := r.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.PasswordDigest = digest
	return nil
}

// memCatalogRepo holds a fixed catalog.
type memCatalogRepo struct {
	artists map[int64]entity.Artist
	albums  map[int64]entity.Album
	songs   map[int64]entity.Song
}

func newMemCatalogRepo() *memCatalogRepo {
	return &memCatalogRepo{
		artists: map[int64]entity.Artist{1: {ID: 1, Name: "Kraftwerk"}},
		albums:  map[int64]entity.Album{1: {ID: 1, Name: "Autobahn", ArtistID: 1}},
		songs: map[int64]entity.Song{
			1: {ID: 1, Name: "Autobahn", Duration: 1369, AlbumID: 1},
			2: {ID: 2, Name: "Kometenmelodie 1", Duration: 386, AlbumID: 1},
		},
	}
}

func (r *memCatalogRepo) ListArtists(ctx context.Context) ([]entity.Artist, error) {
	out := make([]entity.Artist, 0, len(r.artists))
	for _, a := range r.artists {
		out = append(out, a)
	}
	return out, nil
}

func (r *memCatalogRepo) GetArtist(ctx context.Context, id int64) (*entity.Artist, error) {
	if a, ok := r.artists[id]; ok {
		return &a, nil
	}
	return nil, repo.ErrNotFound
}

func (r *memCatalogRepo) ListAlbums(ctx context.Context) ([]entity.Album, error) {
	out := make([]entity.Album, 0, len(r.albums))
	for _, a := range r.albums {
		out = append(out, a)
	}
	return out, nil
}

func (r *memCatalogRepo) GetAlbum(ctx context.Context, id int64) (*entity.Album, error) {
	if a, ok := r.albums[id]; ok {
		return &a, nil
	}
	return nil, repo.ErrNotFound
}

func (r *memCatalogRepo) ListAlbumSongs(ctx context.Context, albumID int64) ([]entity.Song, error) {
	out := make([]entity.Song, 0)
	for _, s := range r.songs {
		if s.AlbumID == albumID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memCatalogRepo) UpdateAlbumArtwork(ctx context.Context, id int64, artworkURL string) error {
	a, ok := r.albums[id]
	if !ok {
		return repo.ErrNotFound
	}
	a.ArtworkURL = artworkURL
	r.albums[id] = a
	return nil
}

func (r *memCatalogRepo) ListSongs(ctx context.Context) ([]entity.Song, error) {
	out := make([]entity.Song, 0, len(r.songs))
	for _, s := range r.songs {
		out = append(out, s)
	}
	return out, nil
}

func (r *memCatalogRepo) GetSong(ctx context.Context, id int64) (*entity.Song, error) {
	if s, ok := r.songs[id]; ok {
		return &s, nil
	}
	return nil, repo.ErrNotFound
}

func (r *memCatalogRepo) CountAlbums(ctx context.Context) (int64, error) {
	return int64(len(r.albums)), nil
}

func (r *memCatalogRepo) CountSongs(ctx context.Context) (int64, error) {
	return int64(len(r.songs)), nil
}

func (r *memCatalogRepo) TotalDuration(ctx context.Context) (int64, error) {
	var total int64
	for _, s := range r.songs {
		total += int64(s.Duration)
	}
	return total, nil
}

// memFavoriteRepo mirrors the UNIQUE(user_id, song_id) constraint.
type memFavoriteRepo struct {
	catalog *memCatalogRepo
	rows    map[[2]int64]bool
}

func newMemFavoriteRepo(catalog *memCatalogRepo) *memFavoriteRepo {
	return &memFavoriteRepo{catalog: catalog, rows: map[[2]int64]bool{}}
}

func (r *memFavoriteRepo) Add(ctx context.Context, userID, songID int64) error {
	r.rows[[2]int64{userID, songID}] = true
	return nil
}

func (r *memFavoriteRepo) Remove(ctx context.Context, userID, songID int64) error {
	delete(r.rows, [2]int64{userID, songID})
	return nil
}

func (r *memFavoriteRepo) Exists(ctx context.Context, userID, songID int64) (bool, error) {
	return r.rows[[2]int64{userID, songID}], nil
}

func (r *memFavoriteRepo) ListSongs(ctx context.Context, userID int64) ([]entity.Song, error) {
	out := make([]entity.Song, 0)
	for k := range r.rows {
		if k[0] != userID {
			continue
		}
		if s, ok := r.catalog.songs[k[1]]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memFavoriteRepo) ListSongIDs(ctx context.Context, userID int64) ([]int64, error) {
	out := make([]int64, 0)
	for k := range r.rows {
		if k[0] == userID {
			out = append(out, k[1])
		}
	}
	return out, nil
}

type testEnv struct {
	router *gin.Engine
	users  *application.UserService
}

// newTestEnv wires real services over in-memory repositories and mounts the
// same routes the router modules register.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	userRepo := newMemUserRepo()
	catalogRepo := newMemCatalogRepo()
	favRepo := newMemFavoriteRepo(catalogRepo)

	codec := helpers.NewTokenCodec("test-secret", 0)
	userSvc := application.NewUserService(userRepo, codec, nil, nil, false)
	catalogSvc := application.NewCatalogService(catalogRepo, nil, nil, nil, "", nil, "", 0)
	favSvc := application.NewFavoriteService(favRepo, catalogRepo)

	userH := NewUserHandler(userSvc, nil)
	catalogH := NewCatalogHandler(catalogSvc, favSvc, nil)
	favH := NewFavoriteHandler(favSvc, nil)

	r := gin.New()
	api := r.Group("/api")

	api.POST("/auth/register", userH.Register)
	api.POST("/auth/login", userH.Login)

	public := api.Group("")
	public.Use(middleware.OptionalAuth(userSvc))
	public.GET("/songs", catalogH.ListSongs)
	public.GET("/songs/:id", catalogH.GetSong)
	public.GET("/albums/:id", catalogH.GetAlbum)
	public.GET("/stats", catalogH.Stats)

	private := api.Group("")
	private.Use(middleware.Auth(userSvc))
	private.GET("/profile", userH.GetProfile)
	private.PUT("/profile/password", userH.ChangePassword)
	private.PUT("/songs/:id/favorite", favH.SetFavorite)
	private.GET("/favorites", favH.ListFavorites)

	return &testEnv{router: r, users: userSvc}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return envelope.Data
}

// register creates a user and returns its token.
func (e *testEnv) register(t *testing.T, email, password string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/register", "", gin.H{"email": email, "password": password})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", email, w.Code, w.Body.String())
	}
	data := decodeData(t, w)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("register response carries no token")
	}
	return token
}
