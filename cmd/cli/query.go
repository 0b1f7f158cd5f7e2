package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/variantsmith/mutscan/pkg/data"
)

const queryResultLimitDefault = 100

var (
	queryLimitFlag = &cli.IntFlag{
		Name:     "limit",
		Usage:    "Limits number of results returned",
		Value:    queryResultLimitDefault,
		Required: false,
	}

	runIDFlag = &cli.Int64Flag{
		Name:     "run",
		Usage:    "Run ID",
		Required: true,
	}

	queryCmd = &cli.Command{
		Name:    "query",
		Aliases: []string{"q"},
		Usage:   "List data query operations",
		Subcommands: []*cli.Command{
			{
				Name:    "runs",
				Usage:   "List persisted runs, most recent first",
				Aliases: []string{"r"},
				Action:  cmdQueryRuns,
				Flags: []cli.Flag{
					queryLimitFlag,
				},
			},
			{
				Name:    "candidates",
				Usage:   "List a run's ranked candidates",
				Aliases: []string{"c"},
				Action:  cmdQueryCandidates,
				Flags: []cli.Flag{
					runIDFlag,
				},
			},
			{
				Name:    "stats",
				Usage:   "Show store row counts",
				Aliases: []string{"s"},
				Action:  cmdQueryStats,
			},
		},
	}
)

func cmdQueryStats(c *cli.Context) error {
	db := getDBOrFail()
	defer db.Close()

	stats, err := data.GetStats(db)
	if err != nil {
		return errors.Wrap(err, "failed to query stats")
	}

	return writeOutput(stats)
}

func cmdQueryRuns(c *cli.Context) error {
	db := getDBOrFail()
	defer db.Close()

	list, err := data.GetRuns(db, c.Int(queryLimitFlag.Name))
	if err != nil {
		return errors.Wrap(err, "failed to query runs")
	}

	return writeOutput(list)
}

func cmdQueryCandidates(c *cli.Context) error {
	id := c.Int64(runIDFlag.Name)

	db := getDBOrFail()
	defer db.Close()

	run, err := data.GetRun(db, id)
	if err != nil {
		return errors.Wrap(err, "failed to query run")
	}
	if run == nil {
		return errors.Errorf("run not found: %d", id)
	}

	list, err := data.GetRunCandidates(db, id)
	if err != nil {
		return errors.Wrap(err, "failed to query run candidates")
	}

	return writeOutput(list)
}
