package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"exposurestats/internal/dto"
	"exposurestats/internal/model"
)

// PhotoRepository implements repository.PhotoRepository for SQLite.
type PhotoRepository struct {
	db *DB
}

// NewPhotoRepository creates a new SQLite photo repository.
func NewPhotoRepository(db *DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

const photoColumns = `name, create_date, focal_length, f_number, camera, lens,
	flag, crop_factor, equivalent_focal_length, date, file_path`

// Insert adds a new photo record to the database.
func (r *PhotoRepository) Insert(p *model.Photo) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO images (`+photoColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Name, p.CreateDate, p.FocalLength, p.FNumber, p.Camera, p.Lens,
		p.Flag, p.CropFactor, p.EquivalentFocalLength, p.Date, p.FilePath)
	if err != nil {
		return 0, fmt.Errorf("failed to insert photo: %w", err)
	}

	return result.LastInsertId()
}

// InsertBatch inserts a scan's worth of photos inside one transaction.
func (r *PhotoRepository) InsertBatch(photos []model.Photo) error {
	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO images (` + photoColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range photos {
		if _, err := stmt.Exec(p.Name, p.CreateDate, p.FocalLength, p.FNumber,
			p.Camera, p.Lens, p.Flag, p.CropFactor, p.EquivalentFocalLength,
			p.Date, p.FilePath); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert photo %s: %w", p.Name, err)
		}
	}

	return tx.Commit()
}

// GetByName retrieves a photo by its name.
func (r *PhotoRepository) GetByName(name string) (*model.Photo, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var p model.Photo
	err := r.db.Conn().QueryRow(`
		SELECT id, `+photoColumns+` FROM images WHERE name = ?
	`, name).Scan(&p.ID, &p.Name, &p.CreateDate, &p.FocalLength, &p.FNumber,
		&p.Camera, &p.Lens, &p.Flag, &p.CropFactor, &p.EquivalentFocalLength,
		&p.Date, &p.FilePath)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return &p, nil
}

// GetAll retrieves photos matching the filter, ordered by capture time.
func (r *PhotoRepository) GetAll(filter *dto.PhotoFilters) ([]model.Photo, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	where, args := buildWhere(filter)
	rows, err := r.db.Conn().Query(`
		SELECT id, `+photoColumns+` FROM images `+where+`
		ORDER BY create_date DESC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}
	defer rows.Close()

	var photos []model.Photo
	for rows.Next() {
		var p model.Photo
		if err := rows.Scan(&p.ID, &p.Name, &p.CreateDate, &p.FocalLength,
			&p.FNumber, &p.Camera, &p.Lens, &p.Flag, &p.CropFactor,
			&p.EquivalentFocalLength, &p.Date, &p.FilePath); err != nil {
			return nil, fmt.Errorf("failed to scan photo row: %w", err)
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// GetTotalCount counts photos matching the filter.
func (r *PhotoRepository) GetTotalCount(filter *dto.PhotoFilters) (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	where, args := buildWhere(filter)
	var count int
	err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM images `+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count photos: %w", err)
	}
	return count, nil
}

// DeleteAll removes every photo record.
func (r *PhotoRepository) DeleteAll() error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM images`); err != nil {
		return fmt.Errorf("failed to delete photos: %w", err)
	}
	return nil
}

func buildWhere(filter *dto.PhotoFilters) (string, []interface{}) {
	if filter == nil {
		return "", nil
	}

	var conds []string
	var args []interface{}

	if len(filter.Cameras) > 0 {
		conds = append(conds, "camera IN ("+placeholders(len(filter.Cameras))+")")
		for _, c := range filter.Cameras {
			args = append(args, c)
		}
	}
	if len(filter.Lenses) > 0 {
		conds = append(conds, "lens IN ("+placeholders(len(filter.Lenses))+")")
		for _, l := range filter.Lenses {
			args = append(args, l)
		}
	}
	if !filter.DateAfter.IsZero() {
		conds = append(conds, "create_date >= ?")
		args = append(args, filter.DateAfter)
	}
	if !filter.DateBefore.IsZero() {
		conds = append(conds, "create_date <= ?")
		args = append(args, filter.DateBefore)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
