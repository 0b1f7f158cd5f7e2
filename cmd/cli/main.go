package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/variantsmith/mutscan/pkg/data"
)

const (
	dirMode = 0700

	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	name    = "mutscan"
	version = "v0.0.1-default"
	commit  = ""

	dbFilePath   = path.Join(getHomeDir(), data.DataFileName)
	debug        = false
	outputFormat = formatJSON

	debugFlag = &cli.BoolFlag{
		Name:        "debug",
		Usage:       "Prints verbose logs (optional, default: false)",
		Destination: &debug,
	}

	dbFilePathFlag = &cli.StringFlag{
		Name:        "db",
		Usage:       fmt.Sprintf("Path to the Sqlite database file (optional, defaults to $HOME/.%s/%s)", name, data.DataFileName),
		Destination: &dbFilePath,
		Value:       dbFilePath,
	}

	formatFlag = &cli.StringFlag{
		Name:        "format",
		Usage:       fmt.Sprintf("Output format [%s, %s]", formatJSON, formatYAML),
		Destination: &outputFormat,
		Value:       formatJSON,
	}
)

func main() {
	initLogging()

	app := &cli.App{
		Name:     name,
		Version:  fmt.Sprintf("%s - (commit: %s)", version, commit),
		Compiled: time.Now(),
		Usage:    "Predictive mutant design: sample, score, and rank candidate mutation sets",
		Flags: []cli.Flag{
			debugFlag,
			dbFilePathFlag,
			formatFlag,
		},
		Commands: []*cli.Command{
			initCmd,
			runCmd,
			queryCmd,
			serverCmd,
		},
		Before: func(c *cli.Context) error {
			if c.Bool(debugFlag.Name) {
				log.SetLevel(log.DebugLevel)
			}
			return data.Init(dbFilePath)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

func getDBOrFail() *sql.DB {
	db, err := data.GetDB(dbFilePath)
	if err != nil {
		log.Fatalf("fatal error opening DB: %v", err)
	}
	return db
}

func writeOutput(v interface{}) error {
	switch outputFormat {
	case formatYAML:
		e := yaml.NewEncoder(os.Stdout)
		if err := e.Encode(v); err != nil {
			return errors.Wrapf(err, "error encoding: %+v", v)
		}
		if err := e.Close(); err != nil {
			return errors.Wrap(err, "error flushing encoder")
		}
	case formatJSON:
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "  ")
		if err := e.Encode(v); err != nil {
			return errors.Wrapf(err, "error encoding: %+v", v)
		}
	default:
		return errors.Errorf("unsupported output format: %s", outputFormat)
	}
	return nil
}

func initLogging() {
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
	log.SetReportCaller(false)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:          false,
		DisableTimestamp:       true,
		ForceColors:            true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
}

func getHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Debugf("error getting home dir, using current dir instead: %v", err)
		return "."
	}

	dirName := "." + name
	dirPath := filepath.Join(home, dirName)
	if _, err := os.Stat(dirPath); errors.Is(err, os.ErrNotExist) {
		log.Debugf("creating dir: %s", dirPath)
		if err := os.Mkdir(dirPath, dirMode); err != nil {
			log.Debugf("error creating dir: %s, using home: %s - %v", dirPath, home, err)
			return home
		}
	}
	return dirPath
}
