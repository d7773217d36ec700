// Package loader bulk-ingests the season CSV exports into the local store,
// one file per season, replacing that season's rows.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"sync"

	crerr "github.com/cockroachdb/errors"
	ants "github.com/panjf2000/ants/v2"

	"github.com/dugout-cli/dugout/internal/domain/statline"
	"github.com/dugout-cli/dugout/internal/domain/teamavg"
	"github.com/dugout-cli/dugout/internal/platform/logging"
	"github.com/dugout-cli/dugout/internal/usecase"
)

// Dataset names one ingestable table.
type Dataset string

const (
	DatasetPitchers     Dataset = "pitchers"
	DatasetHitters      Dataset = "hitters"
	DatasetTeamPitching Dataset = "team-pitching"
	DatasetTeamHitting  Dataset = "team-hitting"
)

func ParseDataset(s string) (Dataset, error) {
	switch Dataset(s) {
	case DatasetPitchers, DatasetHitters, DatasetTeamPitching, DatasetTeamHitting:
		return Dataset(s), nil
	default:
		return "", fmt.Errorf("%w: unknown dataset %q, use pitchers, hitters, team-pitching or team-hitting",
			usecase.ErrInvalidInput, s)
	}
}

func (d Dataset) kind() statline.Kind {
	if d == DatasetPitchers || d == DatasetTeamPitching {
		return statline.KindPitcher
	}
	return statline.KindHitter
}

func (d Dataset) team() bool {
	return d == DatasetTeamPitching || d == DatasetTeamHitting
}

// FileResult reports one ingested file.
type FileResult struct {
	Path string
	Year int
	Rows int
}

// Service runs the CSV ingestion, fanning files out over a worker pool.
type Service struct {
	lines   statline.Writer
	teams   teamavg.Writer
	workers int
	logger  *logging.Logger
}

func NewService(lines statline.Writer, teams teamavg.Writer, workers int, logger *logging.Logger) *Service {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{lines: lines, teams: teams, workers: workers, logger: logger}
}

var filenameYearPattern = regexp.MustCompile(`(202[0-9])`)

// fileYear resolves the season a file carries: the explicit flag wins,
// otherwise the filename must embed the year.
func fileYear(path string, explicit int) (int, error) {
	if explicit > 0 {
		return explicit, nil
	}
	match := filenameYearPattern.FindString(filepath.Base(path))
	if match == "" {
		return 0, fmt.Errorf("%w: cannot determine year for %q, pass --year or embed it in the filename",
			usecase.ErrInvalidInput, path)
	}
	return strconv.Atoi(match)
}

// Load ingests each file as one season of the dataset, replacing that
// season's rows. Files run concurrently; one bad file does not stop the
// others.
func (s *Service) Load(ctx context.Context, dataset Dataset, year int, paths []string) ([]FileResult, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: at least one CSV file is required", usecase.ErrInvalidInput)
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	type outcome struct {
		result FileResult
		err    error
	}
	outcomes := make(chan outcome, len(paths))

	var workers sync.WaitGroup
	for _, path := range paths {
		path := path
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			result, err := s.loadFile(ctx, dataset, year, path)
			outcomes <- outcome{result: result, err: err}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit file to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(outcomes)

	var results []FileResult
	var loadErr error
	for out := range outcomes {
		if out.err != nil {
			loadErr = crerr.CombineErrors(loadErr, out.err)
			continue
		}
		results = append(results, out.result)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	return results, loadErr
}

func (s *Service) loadFile(ctx context.Context, dataset Dataset, year int, path string) (FileResult, error) {
	fileSeason, err := fileYear(path, year)
	if err != nil {
		return FileResult{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := parseCSV(f, dataset, fileSeason)
	if err != nil {
		return FileResult{}, fmt.Errorf("parse %s: %w", path, err)
	}

	var count int
	if dataset.team() {
		count, err = s.teams.ReplaceSeason(ctx, dataset.kind(), fileSeason, rows)
	} else {
		count, err = s.lines.ReplaceSeason(ctx, dataset.kind(), fileSeason, rows)
	}
	if err != nil {
		return FileResult{}, fmt.Errorf("store %s season %d: %w", dataset, fileSeason, err)
	}

	s.logger.Info("season loaded", "dataset", string(dataset), "year", fileSeason, "rows", count, "file", path)
	return FileResult{Path: path, Year: fileSeason, Rows: count}, nil
}
