package data

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/variantsmith/mutscan/pkg/design"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), DataFileName)
	require.NoError(t, Init(path))

	db, err := GetDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func testRanked() []design.RankedCandidate {
	return []design.RankedCandidate{
		{
			Candidate: design.Candidate{
				ID: "mutant_7",
				Mutations: []design.Mutation{
					{Site: 192, WildType: 'W', Variant: 'H'},
					{Site: 215, WildType: 'V', Variant: 'G'},
				},
			},
			Result: design.EnsembleResult{Mean: 8.25, StdDev: 0.12},
		},
		{
			Candidate: design.Candidate{
				ID: "mutant_3",
				Mutations: []design.Mutation{
					{Site: 215, WildType: 'V', Variant: 'G'},
				},
				Undersized: true,
			},
			Result: design.EnsembleResult{Mean: 4.75, StdDev: 0.31},
		},
	}
}

func TestInitValidation(t *testing.T) {
	assert.Error(t, Init(""))
	assert.NoError(t, Init(filepath.Join(t.TempDir(), "new.db")))
}

func TestInitIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), DataFileName)
	require.NoError(t, Init(path))
	require.NoError(t, Init(path))
}

func TestSaveAndQueryRun(t *testing.T) {
	db := testDB(t)

	run := &Run{
		Seed:       42,
		Folds:      5,
		Candidates: 100,
		SizeMin:    5,
		SizeMax:    8,
		Anchor:     "V215G",
		TopN:       2,
	}

	id, err := SaveRun(db, run, testRanked())
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)
	assert.NotEmpty(t, run.Created)

	got, err := GetRun(db, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, run, got)

	missing, err := GetRun(db, id+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSaveRunValidation(t *testing.T) {
	db := testDB(t)

	_, err := SaveRun(nil, &Run{}, nil)
	assert.Error(t, err)

	_, err = SaveRun(db, nil, nil)
	assert.Error(t, err)
}

func TestGetRuns(t *testing.T) {
	db := testDB(t)

	for i := 0; i < 3; i++ {
		_, err := SaveRun(db, &Run{Seed: int64(i), Anchor: "V215G"}, nil)
		require.NoError(t, err)
	}

	list, err := GetRuns(db, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// most recent first
	assert.Greater(t, list[0].ID, list[1].ID)

	all, err := GetRuns(db, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetRunCandidates(t *testing.T) {
	db := testDB(t)

	id, err := SaveRun(db, &Run{Anchor: "V215G", TopN: 2}, testRanked())
	require.NoError(t, err)

	list, err := GetRunCandidates(db, id)
	require.NoError(t, err)
	require.Len(t, list, 2)

	first := list[0]
	assert.Equal(t, 1, first.Position)
	assert.Equal(t, "mutant_7", first.MutantID)
	assert.Equal(t, []string{"W192H", "V215G"}, first.Mutations)
	assert.InDelta(t, 8.25, first.AvgScore, 1e-9)
	assert.InDelta(t, 0.12, first.StdDev, 1e-9)
	assert.False(t, first.Undersized)

	second := list[1]
	assert.Equal(t, 2, second.Position)
	assert.Equal(t, "mutant_3", second.MutantID)
	assert.Equal(t, []string{"V215G"}, second.Mutations)
	assert.True(t, second.Undersized)

	empty, err := GetRunCandidates(db, id+100)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetStats(t *testing.T) {
	db := testDB(t)

	_, err := SaveRun(db, &Run{Anchor: "V215G", TopN: 2}, testRanked())
	require.NoError(t, err)

	stats, err := GetStats(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats["runs"])
	assert.Equal(t, int64(2), stats["candidates"])
	assert.Equal(t, int64(1), stats["undersized"])
}
