package mariadb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/kozaktomas/album-editor/internal/database"
)

// LibraryRepository lists PhotoPrism photos together with their primary file.
type LibraryRepository struct {
	pool *Pool
}

// NewLibraryRepository creates a new LibraryRepository
func NewLibraryRepository(pool *Pool) *LibraryRepository {
	return &LibraryRepository{pool: pool}
}

// libraryQuery builds the shared FROM/WHERE part of the library queries.
// Deleted photos and photos without a usable primary file are skipped.
func libraryQuery(filter database.LibraryFilter) (string, []any) {
	var b strings.Builder
	var args []any

	b.WriteString(`
		FROM photos p
		JOIN files f ON f.photo_id = p.id AND f.file_primary = 1 AND f.file_missing = 0`)
	if filter.AlbumUID != "" {
		b.WriteString(`
		JOIN photos_albums pa ON pa.photo_uid = p.photo_uid AND pa.hidden = 0`)
	}
	b.WriteString(`
		WHERE p.deleted_at IS NULL AND f.file_width > 0 AND f.file_height > 0`)
	if filter.AlbumUID != "" {
		b.WriteString(` AND pa.album_uid = ?`)
		args = append(args, filter.AlbumUID)
	}
	return b.String(), args
}

// ListPhotos returns photos newest first.
func (r *LibraryRepository) ListPhotos(ctx context.Context, filter database.LibraryFilter) ([]database.LibraryPhoto, error) {
	from, args := libraryQuery(filter)
	query := `SELECT p.photo_uid, p.photo_title, p.taken_at, f.file_hash, f.file_width, f.file_height` +
		from + ` ORDER BY p.taken_at DESC, p.photo_uid`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, max(filter.Offset, 0))
	}

	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query library photos: %w", err)
	}
	defer rows.Close()

	var photos []database.LibraryPhoto
	for rows.Next() {
		var p database.LibraryPhoto
		var takenAt sql.NullTime
		if err := rows.Scan(&p.UID, &p.Title, &takenAt, &p.FileHash, &p.Width, &p.Height); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if takenAt.Valid {
			p.TakenAt = takenAt.Time
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return photos, nil
}

// CountPhotos returns the number of importable photos.
func (r *LibraryRepository) CountPhotos(ctx context.Context, filter database.LibraryFilter) (int, error) {
	from, args := libraryQuery(filter)
	var n int
	if err := r.pool.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count library photos: %w", err)
	}
	return n, nil
}
