package data

import (
	"database/sql"
	"strings"

	"github.com/pkg/errors"
)

const (
	selectRunsSQL = `SELECT id, created, seed, folds, candidates, size_min, size_max, anchor, top_n
		FROM run
		ORDER BY id DESC
		LIMIT ?
	`

	selectRunSQL = `SELECT id, created, seed, folds, candidates, size_min, size_max, anchor, top_n
		FROM run
		WHERE id = ?
	`

	selectRunCandidatesSQL = `SELECT run_id, position, mutant_id, mutations, avg_score, std_dev, undersized
		FROM candidate
		WHERE run_id = ?
		ORDER BY position ASC
	`
)

// CandidateRecord is the serializable form of one ranked candidate.
type CandidateRecord struct {
	RunID      int64    `json:"run_id"`
	Position   int      `json:"position"`
	MutantID   string   `json:"mutant_id"`
	Mutations  []string `json:"mutations"`
	AvgScore   float64  `json:"avg_score"`
	StdDev     float64  `json:"std_dev"`
	Undersized bool     `json:"undersized,omitempty"`
}

// GetRuns lists the most recent runs.
func GetRuns(db *sql.DB, limit int) ([]*Run, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}
	if limit < 1 {
		limit = 100
	}

	rows, err := db.Query(selectRunsSQL, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute run select statement")
	}
	defer rows.Close()

	list := make([]*Run, 0)
	for rows.Next() {
		r := &Run{}
		if err := rows.Scan(&r.ID, &r.Created, &r.Seed, &r.Folds, &r.Candidates,
			&r.SizeMin, &r.SizeMax, &r.Anchor, &r.TopN); err != nil {
			return nil, errors.Wrap(err, "failed to scan run row")
		}
		list = append(list, r)
	}

	return list, nil
}

// GetRun returns one run by id, or nil when not found.
func GetRun(db *sql.DB, id int64) (*Run, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	r := &Run{}
	err := db.QueryRow(selectRunSQL, id).Scan(&r.ID, &r.Created, &r.Seed, &r.Folds,
		&r.Candidates, &r.SizeMin, &r.SizeMax, &r.Anchor, &r.TopN)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get run: %d", id)
	}
	return r, nil
}

// GetRunCandidates returns a run's ranked candidates in rank order.
func GetRunCandidates(db *sql.DB, runID int64) ([]*CandidateRecord, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	rows, err := db.Query(selectRunCandidatesSQL, runID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute candidate select statement")
	}
	defer rows.Close()

	list := make([]*CandidateRecord, 0)
	for rows.Next() {
		c := &CandidateRecord{}
		var muts string
		var undersized int
		if err := rows.Scan(&c.RunID, &c.Position, &c.MutantID, &muts,
			&c.AvgScore, &c.StdDev, &undersized); err != nil {
			return nil, errors.Wrap(err, "failed to scan candidate row")
		}
		c.Mutations = strings.Fields(muts)
		c.Undersized = undersized != 0
		list = append(list, c)
	}

	return list, nil
}
