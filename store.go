package paintdry

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const postColumns = `id, title, body, image_url, pubdate`

// Store wraps a SQLite database holding posts and uploaded image metadata.
type Store struct {
	db  *sql.DB
	ids *IDCodec
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema. Public IDs are produced by ids.
func NewStore(path string, ids *IDCodec) (*Store, error) {
	if ids == nil {
		return nil, fmt.Errorf("paintdry: store needs an id codec")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the feed read while the admin writes; busy_timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db, ids: ids}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    body TEXT NOT NULL DEFAULT '',
    image_url TEXT NOT NULL DEFAULT '',
    pubdate TEXT
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

// NewPost is a PostSource producing drafts attached to s.
func (s *Store) NewPost(attrs Attrs) (*Post, error) {
	p, err := NewPost(attrs)
	if err != nil {
		return nil, err
	}
	p.Attach(s)
	return p, nil
}

// ListPosts returns every published post in insertion order.
func (s *Store) ListPosts() ([]*Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts WHERE pubdate IS NOT NULL ORDER BY id`)
}

// ListAllPosts returns every post, drafts included, newest first.
func (s *Store) ListAllPosts() ([]*Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts ORDER BY id DESC`)
}

func (s *Store) queryPosts(query string, args ...any) ([]*Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		p, err := s.scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost returns a post by ID regardless of published status.
func (s *Store) GetPost(id int64) (*Post, error) {
	return s.scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
}

// GetPostByPublicID decodes publicID and returns the post behind it.
func (s *Store) GetPostByPublicID(publicID string) (*Post, error) {
	id, err := s.ids.Decode(publicID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.GetPost(id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanPost(row rowScanner) (*Post, error) {
	var (
		p       Post
		pubdate sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Body, &p.ImageURL, &pubdate); err != nil {
		return nil, err
	}
	if pubdate.Valid {
		t, err := time.Parse(time.RFC3339Nano, pubdate.String)
		if err != nil {
			return nil, fmt.Errorf("post %d: parse pubdate: %w", p.ID, err)
		}
		p.PubDate = t
	}
	publicID, err := s.ids.Encode(p.ID)
	if err != nil {
		return nil, err
	}
	p.PublicID = publicID
	p.Attach(s)
	return &p, nil
}

// SavePost inserts p, or updates it when it already has an ID. New posts
// get their ID and PublicID assigned.
func (s *Store) SavePost(p *Post) error {
	var pubdate sql.NullString
	if p.Published() {
		pubdate = sql.NullString{String: p.PubDate.UTC().Format(time.RFC3339Nano), Valid: true}
	}
	if p.ID != 0 {
		res, err := s.db.Exec(`UPDATE posts SET title = ?, body = ?, image_url = ?, pubdate = ? WHERE id = ?`,
			p.Title, p.Body, p.ImageURL, pubdate, p.ID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	}
	res, err := s.db.Exec(`INSERT INTO posts (title, body, image_url, pubdate) VALUES (?, ?, ?, ?)`,
		p.Title, p.Body, p.ImageURL, pubdate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	publicID, err := s.ids.Encode(id)
	if err != nil {
		return err
	}
	p.ID = id
	p.PublicID = publicID
	p.Attach(s)
	return nil
}

// DeletePost removes a post by ID.
func (s *Store) DeletePost(id int64) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	return err
}

// SaveImage upserts image metadata.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns image metadata, most recent upload first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC, filename`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// HasImage reports whether filename is already recorded.
func (s *Store) HasImage(filename string) (bool, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM images WHERE filename = ?`, filename).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}
