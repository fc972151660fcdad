package db

import (
	"database/sql"
)

// Get returns the blob stored under key. ok is false when nothing is stored.
func (db *DB) Get(key string) (value string, ok bool, err error) {
	err = db.QueryRow("SELECT value FROM blobs WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous blob
func (db *DB) Set(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO blobs (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// Remove deletes the blob stored under key
func (db *DB) Remove(key string) error {
	_, err := db.Exec("DELETE FROM blobs WHERE key = ?", key)
	return err
}

// BlobKeys returns every stored key
func (db *DB) BlobKeys() ([]string, error) {
	rows, err := db.Query("SELECT key FROM blobs ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
