package grader

import (
	"context"
	"path"
	"strconv"
	"strings"
	"time"

	"tourjudge/etc"
	"tourjudge/model"
	"tourjudge/service/solver"
	"tourjudge/service/storage"
	"tourjudge/tour"

	"github.com/go-redis/redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	commentOK           = "the output looks fine"
	commentRuntimeError = "runtime error"

	// commentTextLimit caps the grading comment persisted per record.
	commentTextLimit = 256
)

// Grader runs solvers over inputs and persists the graded outcomes.
type Grader struct {
	DB *gorm.DB

	// RDB is the optional score cache; nil disables caching.
	RDB *redis.Client

	Store storage.Provider
	Exec  solver.ExecConfig
}

// ExecConfigFromEtc converts the configured second-granularity limits.
func ExecConfigFromEtc(cfg *etc.Configuration) solver.ExecConfig {
	return solver.ExecConfig{
		CompileTimeout: time.Duration(cfg.Compile.Timeout) * time.Second,
		RunTimeout:     time.Duration(cfg.Run.Timeout) * time.Second,
		LogLimit:       cfg.Run.LogLimit,
	}
}

// GradeAll grades every (solver, input) pair in order. A solver that fails
// to compile is skipped; a pair that fails to run still produces a
// zero-valued record. The loop is deliberately serial: grading results
// must not depend on scheduling.
func (g *Grader) GradeAll(
	ctx context.Context, run *model.Run, inputs []*Input, solvers []*solver.Solver,
) error {
	for _, s := range solvers {
		if err := g.compile(ctx, run, s); err != nil {
			log.WithField("solver", s.Name).WithError(err).Error("Failed to compile solver")
			continue
		}
		log.WithField("solver", s.Name).Info("Grading solver")
		for _, in := range inputs {
			if err := g.gradeOne(ctx, run, s, in); err != nil {
				log.WithField("solver", s.Name).WithField("input", in.Name).
					WithError(err).Error("Failed to grade")
			}
		}
	}
	if err := model.FinishRun(g.DB, run); err != nil {
		return err
	}
	log.WithField("run", run.ID).Info("All done")
	return nil
}

func (g *Grader) compile(ctx context.Context, run *model.Run, s *solver.Solver) error {
	if !s.HasCompile {
		return nil
	}
	out, err := s.Compile(ctx, g.Exec)
	if len(out) > 0 {
		logPath := path.Join("runs", run.ID.String(), s.Name, "compile.log")
		if werr := g.Store.Write(ctx, logPath, out); werr != nil {
			log.WithField("solver", s.Name).WithError(werr).Error("Failed to store compile log")
		}
	}
	return err
}

// gradeOne runs one solver on one input, scores its stdout, and persists
// the artifacts (run.out, run.log, result.out) and the database record.
func (g *Grader) gradeOne(
	ctx context.Context, run *model.Run, s *solver.Solver, in *Input,
) error {
	stdout, stderr, runErr := s.Run(ctx, g.Exec, []byte(in.Raw))

	base := path.Join("runs", run.ID.String(), s.Name, in.Name)
	if len(stdout) > 0 {
		if err := g.Store.Write(ctx, path.Join(base, "run.out"), stdout); err != nil {
			log.WithError(err).Error("Failed to store solver output")
		}
	}
	if len(stderr) > 0 {
		if err := g.Store.Write(ctx, path.Join(base, "run.log"), stderr); err != nil {
			log.WithError(err).Error("Failed to store solver log")
		}
	}

	var res *tour.ScoreResult
	if runErr != nil {
		res = &tour.ScoreResult{Reason: commentRuntimeError}
	} else {
		res = g.score(ctx, in, string(stdout))
	}

	comment := commentOK
	if !res.Feasible {
		comment = truncateComment(res.Reason)
	}
	resultBody := strconv.FormatFloat(res.TotalValue, 'g', -1, 64) + "\n" + comment + "\n"
	if err := g.Store.Write(ctx, path.Join(base, "result.out"), []byte(resultBody)); err != nil {
		log.WithError(err).Error("Failed to store result")
	}

	rec := &model.RunRecord{
		RunID:    run.ID,
		Solver:   s.Name,
		Input:    in.Name,
		Tags:     in.Tags,
		Value:    res.TotalValue,
		Feasible: res.Feasible,
		Comment:  comment,
	}
	if in.BestValue > 0 {
		n := res.TotalValue / in.BestValue
		rec.Normalized = &n
	}
	if err := model.CreateRunRecord(g.DB, rec); err != nil {
		return err
	}
	return runErr
}

// score consults the redis cache before replaying the tour.
func (g *Grader) score(ctx context.Context, in *Input, output string) *tour.ScoreResult {
	if g.RDB == nil {
		return tour.ScoreOutput(in.Problem, output)
	}
	key := scoreCacheKey(in.Raw, output)
	if res, ok := cacheGet(ctx, g.RDB, key); ok {
		return res
	}
	res := tour.ScoreOutput(in.Problem, output)
	cachePut(ctx, g.RDB, key, res)
	return res
}

func truncateComment(s string) string {
	s = strings.TrimRight(s, "\n ")
	if len(s) > commentTextLimit-3 {
		return s[:commentTextLimit-3] + "..."
	}
	return s
}
