package poster

import (
	"crypto/sha1"
	"database/sql"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

// ErrNotFound is returned when the library has no matching entry.
var ErrNotFound = errors.New("poster: not found")

var (
	compressor, _   = zstd.NewWriter(nil)
	decompressor, _ = zstd.NewReader(nil)
)

// Library is a sqlite database of images and collections. Images are stored
// once, as compressed binary records, and shared between collections.
type Library struct {
	db *sql.DB
}

type queryer interface {
	Exec(string, ...interface{}) (sql.Result, error)
	QueryRow(string, ...interface{}) *sql.Row
}

// OpenLibrary opens or creates the library in file.
func OpenLibrary(file string) (*Library, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	// Single writer, also keeps ":memory:" to one database
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, label TEXT, tooltip TEXT, width INTEGER NOT NULL, height INTEGER NOT NULL, record BLOB NOT NULL)",
		"CREATE TABLE IF NOT EXISTS collection (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, title TEXT, width INTEGER NOT NULL, height INTEGER NOT NULL)",
		"CREATE TABLE IF NOT EXISTS page (collection_id INTEGER NOT NULL, position INTEGER NOT NULL, image_id INTEGER NOT NULL, PRIMARY KEY (collection_id, position), FOREIGN KEY(collection_id) REFERENCES collection(id), FOREIGN KEY(image_id) REFERENCES image(id))",
	} {
		if _, err = db.Exec(stmt); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &Library{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (l *Library) Close() error {
	return l.db.Close()
}

func nullText(t Text) sql.NullString {
	s, ok := t.Get()
	return sql.NullString{String: s, Valid: ok}
}

func textOf(s sql.NullString) Text {
	if !s.Valid {
		return Absent
	}
	return Present(s.String)
}

func presence(t ...Text) byte {
	var b byte
	for i, x := range t {
		if x.IsPresent() {
			b |= 1 << uint(i)
		}
	}
	return b
}

func addImage(q queryer, m *Image) (int64, error) {
	record, err := Encode(m)
	if err != nil {
		return 0, err
	}

	h := sha1.New()
	h.Write(record)
	h.Write([]byte{presence(m.Label, m.Tooltip)})
	sha := fmt.Sprintf("%X", h.Sum(nil))

	// Another writer may store the same image first
	if _, err := q.Exec("INSERT OR IGNORE INTO image (sha1, label, tooltip, width, height, record) VALUES (?, ?, ?, ?, ?, ?)", sha, nullText(m.Label), nullText(m.Tooltip), m.Width, m.Height, compressor.EncodeAll(record, nil)); err != nil {
		return 0, err
	}

	var id int64
	if err := q.QueryRow("SELECT id FROM image WHERE sha1 = ?", sha).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// AddImage stores m, returning its id. Storing an identical image again
// returns the existing id.
func (l *Library) AddImage(m *Image) (int64, error) {
	return addImage(l.db, m)
}

func loadImage(q queryer, id int64) (*Image, error) {
	var label, tooltip sql.NullString
	var record []byte
	switch err := q.QueryRow("SELECT label, tooltip, record FROM image WHERE id = ?", id).Scan(&label, &tooltip, &record); err {
	case sql.ErrNoRows:
		return nil, ErrNotFound
	case nil:
	default:
		return nil, err
	}

	b, err := decompressor.DecodeAll(record, nil)
	if err != nil {
		return nil, err
	}

	m, _, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("image %d: %w", id, err)
	}

	// The record cannot express absence, the columns can
	m.Label = textOf(label)
	m.Tooltip = textOf(tooltip)

	return m, nil
}

// Image returns the image stored with id.
func (l *Library) Image(id int64) (*Image, error) {
	return loadImage(l.db, id)
}

// AddCollection stores c under name, replacing any collection already stored
// under that name.
func (l *Library) AddCollection(name string, c *Collection) (err error) {
	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	var id int64
	switch err := tx.QueryRow("SELECT id FROM collection WHERE name = ?", name).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := tx.Exec("INSERT INTO collection (name, title, width, height) VALUES (?, ?, ?, ?)", name, nullText(c.Title), c.Width, c.Height)
		if err != nil {
			return err
		}
		if id, err = result.LastInsertId(); err != nil {
			return err
		}
	case nil:
		if _, err := tx.Exec("UPDATE collection SET title = ?, width = ?, height = ? WHERE id = ?", nullText(c.Title), c.Width, c.Height, id); err != nil {
			return err
		}
		if _, err := tx.Exec("DELETE FROM page WHERE collection_id = ?", id); err != nil {
			return err
		}
	default:
		return err
	}

	for i := range c.Pages {
		imageID, err := addImage(tx, &c.Pages[i])
		if err != nil {
			return fmt.Errorf("page %d: %w", i, err)
		}
		if _, err := tx.Exec("INSERT INTO page (collection_id, position, image_id) VALUES (?, ?, ?)", id, i, imageID); err != nil {
			return err
		}
	}

	return nil
}

// Collection returns the collection stored under name.
func (l *Library) Collection(name string) (*Collection, error) {
	var id int64
	var title sql.NullString
	c := &Collection{
		Pages: []Image{},
	}
	switch err := l.db.QueryRow("SELECT id, title, width, height FROM collection WHERE name = ?", name).Scan(&id, &title, &c.Width, &c.Height); err {
	case sql.ErrNoRows:
		return nil, ErrNotFound
	case nil:
		c.Title = textOf(title)
	default:
		return nil, err
	}

	rows, err := l.db.Query("SELECT image_id FROM page WHERE collection_id = ? ORDER BY position", id)
	if err != nil {
		return nil, err
	}
	var ids []int64
	for rows.Next() {
		var imageID int64
		if err := rows.Scan(&imageID); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, imageID)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Rows must be closed first, there is only one connection
	for _, imageID := range ids {
		m, err := l.Image(imageID)
		if err != nil {
			return nil, err
		}
		c.Pages = append(c.Pages, *m)
	}

	return c, nil
}

// Collections returns the names of all stored collections in order.
func (l *Library) Collections() ([]string, error) {
	rows, err := l.db.Query("SELECT name FROM collection ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
