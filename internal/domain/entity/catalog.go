package entity

// Artist groups albums. Name is unique across the catalog.
type Artist struct {
	ID   int64
	Name string
	Bio  string
}

// Album belongs to exactly one artist.
type Album struct {
	ID         int64
	Name       string
	ArtworkURL string
	ArtistID   int64
}

// Song belongs to exactly one album. URL and Duration are optional;
// Duration is in whole seconds and never negative.
type Song struct {
	ID       int64
	Name     string
	URL      string
	Duration int
	AlbumID  int64
}

// Favorite is the join row relating one user to one song. At most one row
// exists per (user, song) pair; rows are created and deleted, never updated.
type Favorite struct {
	ID     int64
	UserID int64
	SongID int64
}
