package data

import (
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/variantsmith/mutscan/pkg/design"
)

const (
	insertRunSQL = `INSERT INTO run (
			created, seed, folds, candidates, size_min, size_max, anchor, top_n
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	insertCandidateSQL = `INSERT INTO candidate (
			run_id, position, mutant_id, mutations, avg_score, std_dev, undersized
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	mutationSeparator = " "
)

// Run is one persisted search execution.
type Run struct {
	ID         int64  `json:"id"`
	Created    string `json:"created"`
	Seed       int64  `json:"seed"`
	Folds      int    `json:"folds"`
	Candidates int    `json:"candidates"`
	SizeMin    int    `json:"size_min"`
	SizeMax    int    `json:"size_max"`
	Anchor     string `json:"anchor"`
	TopN       int    `json:"top_n"`
}

// SaveRun persists the run metadata and its ranked candidates in one
// transaction, returning the new run id.
func SaveRun(db *sql.DB, run *Run, ranked []design.RankedCandidate) (int64, error) {
	if db == nil {
		return 0, errDBNotInitialized
	}
	if run == nil {
		return 0, errors.New("run required")
	}

	if run.Created == "" {
		run.Created = time.Now().UTC().Format(time.RFC3339)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, errors.Wrap(err, "failed to begin transaction")
	}

	res, err := tx.Exec(insertRunSQL,
		run.Created, run.Seed, run.Folds, run.Candidates,
		run.SizeMin, run.SizeMax, run.Anchor, run.TopN)
	if err != nil {
		rollback(tx)
		return 0, errors.Wrap(err, "failed to insert run")
	}

	runID, err := res.LastInsertId()
	if err != nil {
		rollback(tx)
		return 0, errors.Wrap(err, "failed to get run id")
	}

	stmt, err := tx.Prepare(insertCandidateSQL)
	if err != nil {
		rollback(tx)
		return 0, errors.Wrap(err, "failed to prepare candidate insert statement")
	}
	defer stmt.Close()

	for i, rc := range ranked {
		undersized := 0
		if rc.Candidate.Undersized {
			undersized = 1
		}
		if _, err := stmt.Exec(runID, i+1, rc.Candidate.ID,
			strings.Join(rc.Candidate.Tokens(), mutationSeparator),
			rc.Result.Mean, rc.Result.StdDev, undersized); err != nil {
			rollback(tx)
			return 0, errors.Wrapf(err, "failed to insert candidate[%d]: %s", i, rc.Candidate.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "failed to commit transaction")
	}

	run.ID = runID
	return runID, nil
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		log.Errorf("failed to rollback transaction: %v", err)
	}
}
