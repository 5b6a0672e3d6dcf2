package handler

import (
	"context"
	"net/http"

	"tourjudge/etc"
	"tourjudge/model"
	"tourjudge/service/db"
	"tourjudge/service/grader"
	"tourjudge/service/solver"
	"tourjudge/service/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// HandleRunStart discovers solvers and inputs and starts a batch grading
// run in the background, returning the run id immediately.
func HandleRunStart(c *gin.Context) {
	conf := etc.Config

	solvers, err := solver.Discover(conf.Dirs.Solvers)
	if err != nil {
		log.WithError(err).Error("Failed to discover solvers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to discover solvers"})
		return
	}
	inputs, err := grader.LoadInputs(conf.Dirs.Inputs, conf.TourLimits())
	if err != nil {
		log.WithError(err).Error("Failed to load inputs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load inputs"})
		return
	}

	run, err := model.CreateRun(db.PDB, len(solvers), len(inputs))
	if err != nil {
		log.WithError(err).Error("Failed to create run")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create run"})
		return
	}

	g := &grader.Grader{
		DB:    db.PDB,
		RDB:   db.RDB,
		Store: storage.Default,
		Exec:  grader.ExecConfigFromEtc(conf),
	}
	// The request only starts the run; grading continues past it.
	go func() {
		if err := g.GradeAll(context.Background(), run, inputs, solvers); err != nil {
			log.WithField("run", run.ID).WithError(err).Error("Grading run failed")
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"run": run.ID, "solvers": len(solvers), "inputs": len(inputs)})
}

// HandleRunGet returns a run and its graded records, optionally filtered
// with ?solver=.
func HandleRunGet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	run, err := model.GetRunByID(db.PDB, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	records, err := model.ListRunRecords(db.PDB, id, c.Query("solver"))
	if err != nil {
		log.WithError(err).Error("Failed to list run records")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list run records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"run": run, "records": records})
}

// HandleRunList lists all runs, newest first.
func HandleRunList(c *gin.Context) {
	runs, err := model.ListRuns(db.PDB)
	if err != nil {
		log.WithError(err).Error("Failed to list runs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}
