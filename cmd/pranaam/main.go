package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"pranaam/config"
	"pranaam/db"
	"pranaam/logging"
	"pranaam/models"
	"pranaam/naam"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("pranaam", flag.ExitOnError)
	input := flags.String("input", "", "single name to analyze")
	file := flags.String("file", "", "file with one name per line")
	lang := flags.String("lang", "eng", "language of input names (eng or hin)")
	latest := flags.Bool("latest", false, "download the latest model version")
	output := flags.String("output", "", "write results as CSV to this file instead of stdout")
	configPath := flags.String("config", "", "path to YAML config file")
	dbPath := flags.String("db", "", "record predictions into this sqlite database")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if (*input == "") == (*file == "") {
		return errors.New("exactly one of -input or -file is required")
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	names, err := gatherNames(*input, *file)
	if err != nil {
		return err
	}

	cacheDir, err := cfg.ResolveCacheDir()
	if err != nil {
		return err
	}
	store, err := models.NewStore(
		models.WithBaseURL(cfg.ModelURL),
		models.WithCacheDir(cacheDir),
		models.WithTimeout(time.Duration(cfg.DownloadTimeoutSeconds)*time.Second),
		models.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	predictor, err := naam.New(naam.WithResolver(store), naam.WithLogger(logger))
	if err != nil {
		return err
	}

	table, err := predictor.PredRel(context.Background(), names, *lang, *latest)
	if err != nil {
		return err
	}

	auditPath := *dbPath
	if auditPath == "" {
		auditPath = cfg.Database.Path
	}
	if auditPath != "" {
		if err := db.InitDB(auditPath); err != nil {
			return fmt.Errorf("opening audit database: %w", err)
		}
		defer db.Close()
		if err := db.SaveResults(*lang, table); err != nil {
			return fmt.Errorf("recording predictions: %w", err)
		}
	}

	if *output != "" {
		out, err := os.Create(*output)
		if err != nil {
			return err
		}
		if err := table.WriteCSV(out); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	}

	fmt.Print(table.String())
	return nil
}

// gatherNames reads the input names from the flag or the input file. Blank
// lines are kept out; the names themselves are passed through verbatim.
func gatherNames(input, file string) ([]string, error) {
	if input != "" {
		return []string{input}, nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
