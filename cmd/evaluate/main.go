package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"ahp-decide/internal/decision"
	"ahp-decide/internal/store"
	"ahp-decide/internal/util"
)

func main() {
	var (
		dbPath    = flag.String("db", "", "Optional SQLite database to save evaluated decisions into")
		writeBack = flag.Bool("write", false, "Rewrite each input file with the evaluated decision")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		logrus.Fatal("usage: evaluate [-db path] [-write] decision.json [decision.json...]")
	}

	var db *store.Database
	if *dbPath != "" {
		opened, err := store.Open(filepath.Clean(*dbPath), true)
		if err != nil {
			logrus.Fatalf("open database: %v", err)
		}
		db = opened
		defer func() {
			if cerr := db.Close(); cerr != nil {
				logrus.WithError(cerr).Warn("close database")
			}
		}()
	}

	failed := 0
	for _, path := range flag.Args() {
		if err := evaluateFile(path, db, *writeBack); err != nil {
			failed++
			var aggregate decision.ValidationErrors
			if errors.As(err, &aggregate) {
				logrus.WithField("file", path).Error("decision is incomplete:")
				for _, msg := range aggregate.Messages() {
					logrus.Errorf("  - %s", msg)
				}
				continue
			}
			logrus.WithError(err).WithField("file", path).Error("evaluate decision")
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func evaluateFile(path string, db *store.Database, writeBack bool) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	dec, err := decision.Load(data, nil)
	if err != nil {
		return err
	}

	watch := util.StartStopwatch()
	if err := dec.Evaluate(); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"decision_id": dec.ID,
		"goal":        dec.Goal,
		"duration_ms": watch.ElapsedMs(),
	}).Info("decision evaluated")

	printSummary(dec)

	if db != nil {
		if _, err := db.SaveDecision(dec); err != nil {
			return fmt.Errorf("save decision: %w", err)
		}
	}
	if writeBack {
		evaluated, err := dec.JSON()
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, evaluated, 0o644); err != nil {
			return fmt.Errorf("write file: %w", err)
		}
	}
	return nil
}

func printSummary(dec *decision.Decision) {
	fmt.Printf("\nGoal: %s\nRecommended choice: %s\n\n", dec.Goal, dec.Summary.RecommendedChoice)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	columns := dec.BreakdownColumns()

	fmt.Fprint(w, "Alternative")
	for _, column := range columns {
		fmt.Fprintf(w, "\t%s", column)
	}
	fmt.Fprintln(w)

	for _, row := range dec.BreakdownRows() {
		fmt.Fprint(w, row)
		for _, column := range columns {
			fmt.Fprintf(w, "\t%.3f", dec.Summary.Breakdown[row][column])
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		logrus.WithError(err).Warn("flush summary table")
	}
	fmt.Println()
}
