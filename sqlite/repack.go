package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/repackdb/repackdb"
)

// Compile-time interface verification.
var _ repackdb.RepackService = (*RepackService)(nil)

// RepackService implements repackdb.RepackService using SQLite.
type RepackService struct {
	db *DB
}

// NewRepackService creates a new RepackService.
func NewRepackService(db *DB) *RepackService {
	return &RepackService{db: db}
}

// hashRepack fingerprints the mutable attributes of a repack so that
// unchanged re-crawls are cheap to recognize.
func hashRepack(r *repackdb.Repack) string {
	parts := []string{
		r.Title,
		repackdb.StringValue(r.GenresTags),
		repackdb.StringValue(r.Company),
		repackdb.StringValue(r.Languages),
		repackdb.StringValue(r.OriginalSize),
		repackdb.StringValue(r.RepackSize),
		repackdb.StringValue(r.Date),
	}
	h := xxhash.Sum64String(strings.Join(parts, "\x1f"))
	const hexdigits = "0123456789abcdef"
	b := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		b[i] = hexdigits[h&0xf]
		h >>= 4
	}
	return string(b)
}

// encodeStrings marshals a string slice to a JSON text column value.
// Empty slices map to NULL so the merge-preserve COALESCE leaves the
// stored value alone.
func encodeStrings(values []string) (*string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	buf, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	s := string(buf)
	return &s, nil
}

// decodeStrings unmarshals a JSON text column value into a string slice.
func decodeStrings(value sql.NullString) ([]string, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(value.String), &values); err != nil {
		return nil, err
	}
	return values, nil
}

// UpsertRepack inserts or updates a repack keyed by its URL, then
// reconciles its magnet links by (repack, source). The whole record runs in
// one transaction so a constraint violation rolls back the offending record
// alone.
func (s *RepackService) UpsertRepack(ctx context.Context, r *repackdb.Repack) error {
	if err := r.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := upsertRepackTx(ctx, tx, r); err != nil {
		return err
	}

	return tx.Commit()
}

// upsertRepackTx performs the two-phase reconcile: resolve identity by URL
// (find-or-create, the ID is assigned once and never changes), then
// overwrite the mutable attribute fields. Description, features, and
// mirrors are merge-preserve: a crawl that did not capture them leaves the
// stored values alone, a crawl that did overwrites them.
func upsertRepackTx(ctx context.Context, tx *sql.Tx, r *repackdb.Repack) error {
	now := time.Now().UTC()
	nowStr := now.Format(time.RFC3339)

	features, err := encodeStrings(r.Features)
	if err != nil {
		return err
	}
	mirrors, err := encodeStrings(r.Mirrors)
	if err != nil {
		return err
	}
	r.ContentHash = hashRepack(r)

	var id string
	err = tx.QueryRowContext(ctx, "SELECT id FROM repacks WHERE url = ?", r.URL).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		id = uuid.New().String()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO repacks (
				id, url, title, genres_tags, company, languages,
				original_size, repack_size, date, description, features,
				mirrors, content_hash, created_at, updated_at
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, r.URL, r.Title, r.GenresTags, r.Company, r.Languages,
			r.OriginalSize, r.RepackSize, r.Date, r.Description, features,
			mirrors, r.ContentHash, nowStr, nowStr)
		if err != nil {
			return err
		}
		r.CreatedAt = now
	case err != nil:
		return err
	default:
		_, err = tx.ExecContext(ctx, `
			UPDATE repacks
			SET title = ?, genres_tags = ?, company = ?, languages = ?,
				original_size = ?, repack_size = ?, date = ?,
				description = COALESCE(?, description),
				features = COALESCE(?, features),
				mirrors = COALESCE(?, mirrors),
				content_hash = ?, updated_at = ?
			WHERE id = ?
		`, r.Title, r.GenresTags, r.Company, r.Languages,
			r.OriginalSize, r.RepackSize, r.Date,
			r.Description, features, mirrors,
			r.ContentHash, nowStr, id)
		if err != nil {
			return err
		}
	}

	r.ID = id
	r.UpdatedAt = now

	for _, m := range r.Magnets {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO magnet_links (repack_id, source, magnet, created_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(repack_id, source)
			DO UPDATE SET magnet = excluded.magnet
		`, id, m.Source, m.URI, nowStr)
		if err != nil {
			return err
		}
	}

	return nil
}

// UpsertRepacks upserts a batch of repacks. Records are processed
// independently: a record without a URL counts as a skip, a storage fault
// counts as a failure, and neither aborts the batch.
func (s *RepackService) UpsertRepacks(ctx context.Context, repacks []*repackdb.Repack) (*repackdb.BatchResult, error) {
	result := &repackdb.BatchResult{}
	for _, r := range repacks {
		switch err := s.UpsertRepack(ctx, r); {
		case err == nil:
			result.Saved++
		case repackdb.ErrorCode(err) == repackdb.EINVALID:
			result.Skipped++
		default:
			result.Failed++
		}
	}
	return result, nil
}

const repackColumns = `id, url, title, genres_tags, company, languages,
	original_size, repack_size, date, description, features, mirrors,
	content_hash, created_at, updated_at`

// FindRepackByID retrieves a repack by ID.
func (s *RepackService) FindRepackByID(ctx context.Context, id string) (*repackdb.Repack, error) {
	return s.findOneRepack(ctx, "SELECT "+repackColumns+" FROM repacks WHERE id = ?", id)
}

// FindRepackByURL retrieves a repack by its canonical URL.
func (s *RepackService) FindRepackByURL(ctx context.Context, url string) (*repackdb.Repack, error) {
	return s.findOneRepack(ctx, "SELECT "+repackColumns+" FROM repacks WHERE url = ?", url)
}

// FindRepackByTitle retrieves the most recent repack with the given title.
func (s *RepackService) FindRepackByTitle(ctx context.Context, title string) (*repackdb.Repack, error) {
	return s.findOneRepack(ctx,
		"SELECT "+repackColumns+" FROM repacks WHERE title = ? ORDER BY date DESC LIMIT 1", title)
}

func (s *RepackService) findOneRepack(ctx context.Context, query string, arg any) (*repackdb.Repack, error) {
	row := s.db.QueryRowContext(ctx, query, arg)
	r, err := scanRepack(row)
	if err == sql.ErrNoRows {
		return nil, repackdb.Errorf(repackdb.ENOTFOUND, "repack not found")
	}
	if err != nil {
		return nil, err
	}
	if err := s.attachMagnets(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// FindRepacks retrieves repacks matching the filter, newest first.
func (s *RepackService) FindRepacks(ctx context.Context, filter repackdb.RepackFilter) ([]*repackdb.Repack, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + repackColumns + " FROM repacks WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Title != nil {
		query.WriteString(" AND title = ?")
		args = append(args, *filter.Title)
	}

	query.WriteString(" ORDER BY date DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	return s.findRepacks(ctx, query.String(), args...)
}

// SearchRepacks finds repacks whose title, genres/tags, or company contain
// the query as a substring, newest first.
func (s *RepackService) SearchRepacks(ctx context.Context, query string) ([]*repackdb.Repack, error) {
	pattern := "%" + query + "%"
	return s.findRepacks(ctx, `
		SELECT `+repackColumns+` FROM repacks
		WHERE title LIKE ? OR genres_tags LIKE ? OR company LIKE ?
		ORDER BY date DESC
	`, pattern, pattern, pattern)
}

func (s *RepackService) findRepacks(ctx context.Context, query string, args ...any) ([]*repackdb.Repack, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var repacks []*repackdb.Repack
	for rows.Next() {
		r, err := scanRepack(rows)
		if err != nil {
			return nil, err
		}
		repacks = append(repacks, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, r := range repacks {
		if err := s.attachMagnets(ctx, r); err != nil {
			return nil, err
		}
	}

	return repacks, nil
}

// Stats returns aggregate counts over the stored catalog.
func (s *RepackService) Stats(ctx context.Context) (*repackdb.Stats, error) {
	var stats repackdb.Stats

	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM repacks").Scan(&stats.Repacks); err != nil {
		return nil, err
	}
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM magnet_links").Scan(&stats.Magnets); err != nil {
		return nil, err
	}
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(DISTINCT company) FROM repacks WHERE company IS NOT NULL").Scan(&stats.Companies); err != nil {
		return nil, err
	}

	return &stats, nil
}

// DeleteRepack permanently removes a repack; magnet links cascade.
func (s *RepackService) DeleteRepack(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM repacks WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repackdb.Errorf(repackdb.ENOTFOUND, "repack not found")
	}

	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanRepack.
type scanner interface {
	Scan(dest ...any) error
}

func scanRepack(row scanner) (*repackdb.Repack, error) {
	var r repackdb.Repack
	var genresTags, company, languages, originalSize, repackSize sql.NullString
	var date, description, features, mirrors sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&r.ID, &r.URL, &r.Title, &genresTags, &company, &languages,
		&originalSize, &repackSize, &date, &description, &features, &mirrors,
		&r.ContentHash, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	r.GenresTags = nullableString(genresTags)
	r.Company = nullableString(company)
	r.Languages = nullableString(languages)
	r.OriginalSize = nullableString(originalSize)
	r.RepackSize = nullableString(repackSize)
	r.Date = nullableString(date)
	r.Description = nullableString(description)

	if r.Features, err = decodeStrings(features); err != nil {
		return nil, err
	}
	if r.Mirrors, err = decodeStrings(mirrors); err != nil {
		return nil, err
	}

	if r.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &r, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

// parseRFC3339 parses a stored timestamp column, naming the column in the
// error when the value is corrupt.
func parseRFC3339(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t, nil
}

// appendPagination adds LIMIT and OFFSET clauses for positive values.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// attachMagnets loads the magnet links owned by a repack in insertion order.
func (s *RepackService) attachMagnets(ctx context.Context, r *repackdb.Repack) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT source, magnet FROM magnet_links WHERE repack_id = ? ORDER BY id", r.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	r.Magnets = nil
	for rows.Next() {
		var m repackdb.Magnet
		if err := rows.Scan(&m.Source, &m.URI); err != nil {
			return err
		}
		r.Magnets = append(r.Magnets, m)
	}
	return rows.Err()
}
