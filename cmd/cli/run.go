package main

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/variantsmith/mutscan/pkg/config"
	"github.com/variantsmith/mutscan/pkg/data"
	"github.com/variantsmith/mutscan/pkg/design"
	"github.com/variantsmith/mutscan/pkg/report"
)

var (
	configPathFlag = &cli.StringFlag{
		Name:     "config",
		Aliases:  []string{"c"},
		Usage:    "Path to the run configuration YAML file",
		Required: true,
	}

	reportPathFlag = &cli.StringFlag{
		Name:  "report",
		Usage: "Path to write a Markdown report of the run (optional)",
	}

	workersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "Number of concurrent evaluation workers (default: number of CPUs)",
	}

	initConfigPathFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path for the new configuration file",
		Value:   "mutscan.yaml",
	}

	initCmd = &cli.Command{
		Name:   "init",
		Usage:  "Write an example run configuration",
		Action: cmdInitConfig,
		Flags: []cli.Flag{
			initConfigPathFlag,
		},
	}

	runCmd = &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Run the design search and persist the ranked candidates",
		Action:  cmdRunSearch,
		Flags: []cli.Flag{
			configPathFlag,
			reportPathFlag,
			workersFlag,
		},
	}
)

func cmdInitConfig(c *cli.Context) error {
	path := c.String(initConfigPathFlag.Name)
	if err := config.Save(path, config.Example()); err != nil {
		return errors.Wrap(err, "failed to write example config")
	}
	log.Infof("wrote example config: %s", path)
	return nil
}

func cmdRunSearch(c *cli.Context) error {
	cfg, err := config.Read(c.String(configPathFlag.Name))
	if err != nil {
		return errors.Wrap(err, "failed to read config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	pipeline, err := buildPipeline(cfg, c.Int(workersFlag.Name))
	if err != nil {
		return err
	}

	log.Infof("sampling %d candidates (size %d-%d, %d folds, seed %d)...",
		cfg.Candidates, cfg.SizeRange.Min, cfg.SizeRange.Max, cfg.Folds, cfg.Seed)

	ranked, err := pipeline.Run(c.Context, cfg.Candidates, cfg.Top, cfg.Seed)
	if err != nil {
		return errors.Wrap(err, "search failed")
	}

	db := getDBOrFail()
	defer db.Close()

	run := &data.Run{
		Seed:       cfg.Seed,
		Folds:      cfg.Folds,
		Candidates: cfg.Candidates,
		SizeMin:    cfg.SizeRange.Min,
		SizeMax:    cfg.SizeRange.Max,
		Anchor:     cfg.Anchor,
		TopN:       cfg.Top,
	}

	runID, err := data.SaveRun(db, run, ranked)
	if err != nil {
		return errors.Wrap(err, "failed to save run")
	}
	log.Infof("run %d saved: kept top %d of %d candidates", runID, len(ranked), cfg.Candidates)

	records, err := data.GetRunCandidates(db, runID)
	if err != nil {
		return errors.Wrap(err, "failed to read back run candidates")
	}

	if path := c.String(reportPathFlag.Name); path != "" {
		if err := writeReport(path, run, records); err != nil {
			return err
		}
		log.Infof("report written: %s", path)
	}

	return writeOutput(records)
}

func buildPipeline(cfg *config.Config, workers int) (*design.Pipeline, error) {
	seq, err := cfg.LoadSequence()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load sequence")
	}

	catalog, err := design.NewCatalog(seq, cfg.Numbering, cfg.ActiveSites)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build site catalog")
	}

	anchor, err := cfg.AnchorMutation()
	if err != nil {
		return nil, errors.Wrap(err, "invalid anchor mutation")
	}

	gen, err := design.NewGenerator(catalog, cfg.Alphabet, anchor, cfg.SizeRange.Min, cfg.SizeRange.Max)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build generator")
	}

	secondary, err := cfg.SecondaryMutations()
	if err != nil {
		return nil, errors.Wrap(err, "invalid secondary mutations")
	}

	scorer := design.NewWeightedScorer(cfg.DesignWeights(), anchor,
		cfg.PrimarySite, []byte(cfg.PrimaryVariants), secondary)

	eval, err := design.NewEvaluator(scorer, cfg.Folds, cfg.Seed, cfg.Noise)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build evaluator")
	}

	return &design.Pipeline{
		Generator: gen,
		Evaluator: eval,
		Workers:   workers,
	}, nil
}

func writeReport(path string, run *data.Run, records []*data.CandidateRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create report file: %s", path)
	}
	defer f.Close()

	if err := report.WriteMarkdown(f, run, records); err != nil {
		return errors.Wrap(err, "failed to write report")
	}
	return nil
}
