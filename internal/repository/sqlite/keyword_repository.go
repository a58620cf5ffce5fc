package sqlite

import (
	"fmt"
	"time"

	"exposurestats/internal/model"
)

// KeywordRepository implements repository.KeywordRepository for SQLite.
type KeywordRepository struct {
	db *DB
}

// NewKeywordRepository creates a new SQLite keyword repository.
func NewKeywordRepository(db *DB) *KeywordRepository {
	return &KeywordRepository{db: db}
}

// EnsureKeyword inserts a keyword if unknown and returns its id.
func (r *KeywordRepository) EnsureKeyword(keyword string, aiTag bool, category string) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`
		INSERT OR IGNORE INTO keywords (keyword, ai_tag, category)
		VALUES (?, ?, ?)
	`, keyword, aiTag, category); err != nil {
		return 0, fmt.Errorf("failed to insert keyword: %w", err)
	}

	var id int64
	err := r.db.Conn().QueryRow(`SELECT id FROM keywords WHERE keyword = ?`, keyword).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to look up keyword: %w", err)
	}
	return id, nil
}

// TagPhoto records a manual (sidecar) keyword for a photo.
func (r *KeywordRepository) TagPhoto(photoID, keywordID int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`
		INSERT INTO image_keywords (keyword_id, image_id) VALUES (?, ?)
	`, keywordID, photoID); err != nil {
		return fmt.Errorf("failed to tag photo: %w", err)
	}
	return nil
}

// TagPhotoAI records an AI-produced keyword together with when it was
// assigned.
func (r *KeywordRepository) TagPhotoAI(photoID, keywordID int64, taggedAt time.Time) error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`
		INSERT INTO ai_tagged_images (keyword_id, image_id, tagging_date)
		VALUES (?, ?, ?)
	`, keywordID, photoID, taggedAt); err != nil {
		return fmt.Errorf("failed to AI-tag photo: %w", err)
	}
	return nil
}

// GetAllKeywords returns every known keyword.
func (r *KeywordRepository) GetAllKeywords() ([]model.Keyword, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`SELECT id, keyword, ai_tag, category FROM keywords ORDER BY keyword`)
	if err != nil {
		return nil, fmt.Errorf("failed to query keywords: %w", err)
	}
	defer rows.Close()

	var keywords []model.Keyword
	for rows.Next() {
		var k model.Keyword
		if err := rows.Scan(&k.ID, &k.Keyword, &k.AITag, &k.Category); err != nil {
			return nil, fmt.Errorf("failed to scan keyword row: %w", err)
		}
		keywords = append(keywords, k)
	}
	return keywords, rows.Err()
}

// GetKeywordsByPhotoID returns the manual keywords attached to a photo.
func (r *KeywordRepository) GetKeywordsByPhotoID(photoID int64) ([]string, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT k.keyword FROM keywords k
		JOIN image_keywords ik ON ik.keyword_id = k.id
		WHERE ik.image_id = ?
		ORDER BY k.keyword
	`, photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to query photo keywords: %w", err)
	}
	defer rows.Close()

	var keywords []string
	for rows.Next() {
		var kw string
		if err := rows.Scan(&kw); err != nil {
			return nil, fmt.Errorf("failed to scan keyword: %w", err)
		}
		keywords = append(keywords, kw)
	}
	return keywords, rows.Err()
}

// DeleteAll removes all keyword and tagging records.
func (r *KeywordRepository) DeleteAll() error {
	r.db.Lock()
	defer r.db.Unlock()

	for _, stmt := range []string{
		`DELETE FROM ai_tagged_images`,
		`DELETE FROM image_keywords`,
		`DELETE FROM keywords`,
	} {
		if _, err := r.db.Conn().Exec(stmt); err != nil {
			return fmt.Errorf("failed to delete keywords: %w", err)
		}
	}
	return nil
}
