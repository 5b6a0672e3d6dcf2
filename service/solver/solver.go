// Package solver discovers and executes contestant solvers. A solver is a
// directory containing an executable "run" (fed the problem text on stdin)
// and, optionally, an executable "compile" to be invoked once beforehand.
package solver

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Solver is one contestant solver directory.
type Solver struct {
	Name string
	Dir  string

	// HasCompile is true when the directory provides a compile step.
	HasCompile bool
}

// Load validates a single solver directory.
func Load(dir string) (*Solver, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(err, "stat solver dir")
	}
	if !fi.IsDir() {
		return nil, errors.Errorf("not a directory: %s", dir)
	}

	if !isExecutable(filepath.Join(dir, "run")) {
		return nil, errors.Errorf("no executable 'run' file in %s", dir)
	}
	s := &Solver{Name: filepath.Base(dir), Dir: dir}

	compilePath := filepath.Join(dir, "compile")
	if _, err := os.Stat(compilePath); err == nil {
		if !isExecutable(compilePath) {
			return nil, errors.Errorf("'compile' file in %s is not executable", dir)
		}
		s.HasCompile = true
	}
	return s, nil
}

// Discover scans dir for solver directories. Entries that do not satisfy
// the solver contract are logged and skipped, not fatal.
func Discover(dir string) ([]*Solver, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "read solvers dir")
	}
	var solvers []*Solver
	for _, e := range entries {
		s, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			log.WithField("solver", e.Name()).WithError(err).Warn("Failed to add solver")
			continue
		}
		solvers = append(solvers, s)
		log.WithField("solver", s.Name).Info("Added solver")
	}
	log.WithField("count", len(solvers)).Info("Solver scan finished")
	return solvers, nil
}

func isExecutable(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular() && fi.Mode()&0o111 != 0
}
