package data

import (
	"database/sql"

	"github.com/pkg/errors"
)

var statsQueries = map[string]string{
	"runs":       "SELECT COUNT(*) FROM run",
	"candidates": "SELECT COUNT(*) FROM candidate",
	"undersized": "SELECT COUNT(*) FROM candidate WHERE undersized = 1",
}

// GetStats returns row counts describing the state of the store.
func GetStats(db *sql.DB) (map[string]int64, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	out := make(map[string]int64, len(statsQueries))
	for name, q := range statsQueries {
		var count int64
		if err := db.QueryRow(q).Scan(&count); err != nil {
			return nil, errors.Wrapf(err, "failed to count %s", name)
		}
		out[name] = count
	}

	return out, nil
}
