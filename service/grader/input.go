// Package grader wires the tour validator and scorer to solver execution,
// artifact storage and the result database.
package grader

import (
	"os"
	"path/filepath"

	"tourjudge/tour"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ManifestName is the optional metadata file kept next to the problem files.
const ManifestName = "manifest.yaml"

// Input is a validated problem file ready to feed to solvers.
type Input struct {
	Name string

	// Raw is the problem text exactly as read; it is what solvers get on
	// stdin.
	Raw string

	Problem *tour.Problem

	Tags []string

	// BestValue is the reference best total value for this input, used to
	// normalize scores. Zero when the manifest does not provide one.
	BestValue float64
}

// Manifest carries optional per-input metadata.
type Manifest struct {
	Inputs map[string]ManifestEntry `yaml:"inputs"`
}

// ManifestEntry describes one input file.
type ManifestEntry struct {
	Tags      []string `yaml:"tags"`
	BestValue float64  `yaml:"best_value"`
}

func loadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "open manifest")
	}
	defer f.Close()

	var m Manifest
	if err := yaml.NewDecoder(f).Decode(&m); err != nil {
		return nil, errors.Wrap(err, "parse manifest")
	}
	return &m, nil
}

// LoadInputs validates every problem file in dir. Files that fail
// validation are logged and skipped, not fatal, so one broken input does
// not take the whole contest down.
func LoadInputs(dir string, limits tour.Limits) ([]*Input, error) {
	manifest, err := loadManifest(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "read inputs dir")
	}

	var inputs []*Input
	for _, e := range entries {
		if e.IsDir() || e.Name() == ManifestName {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			log.WithField("input", e.Name()).WithError(err).Warn("Failed to read input")
			continue
		}
		problem, err := tour.ParseProblem(string(raw), limits)
		if err != nil {
			log.WithField("input", e.Name()).WithError(err).Warn("Failed to add input")
			continue
		}
		in := &Input{Name: e.Name(), Raw: string(raw), Problem: problem}
		if m, ok := manifest.Inputs[e.Name()]; ok {
			in.Tags = m.Tags
			in.BestValue = m.BestValue
		}
		inputs = append(inputs, in)
		log.WithField("input", in.Name).Info("Added input")
	}
	log.WithField("count", len(inputs)).Info("Input scan finished")
	return inputs, nil
}
