package cmd

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/chriserin/gherk/internal/config"
	"github.com/chriserin/gherk/internal/db"
	"github.com/chriserin/gherk/internal/logging"
	"github.com/chriserin/gherk/internal/parser"
)

const featureExt = ".feature"

type project struct {
	cfg    *config.Config
	logger *zap.Logger
}

func loadProject() (*project, error) {
	cfg, err := config.Load(configDirFlag)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &project{cfg: cfg, logger: logging.New(verboseFlag)}, nil
}

func (p *project) parseOptions() []parser.Option {
	opts := []parser.Option{parser.WithLanguage(p.cfg.Language)}
	if p.cfg.StrictContinuation {
		opts = append(opts, parser.WithStrictContinuation())
	}
	return opts
}

func (p *project) openDB() (*sql.DB, error) {
	if _, err := os.Stat(p.cfg.FeaturesDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("run `gherk init` first")
	}
	sqlDB, err := db.Open(p.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return sqlDB, nil
}

// featureFiles returns every *.feature file below the features directory, sorted.
func (p *project) featureFiles() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(p.cfg.FeaturesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, featureExt) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", p.cfg.FeaturesDir, err)
	}
	sort.Strings(paths)
	return paths, nil
}
