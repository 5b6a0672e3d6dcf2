package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"tourjudge/etc"
	"tourjudge/tour"

	"github.com/gin-gonic/gin"
)

type scoreReq struct {
	// Problem is raw problem text; Input names a file in the inputs
	// directory instead. Exactly one of the two must be set.
	Problem string `json:"problem"`
	Input   string `json:"input"`

	// Output is the candidate tour to score.
	Output string `json:"output"`
}

// HandleScore scores one candidate output against a problem and returns
// the ScoreResult. Rejections are a normal 200 outcome: the output was
// graded, its value is zero.
func HandleScore(c *gin.Context) {
	var req scoreReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if (req.Problem == "") == (req.Input == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of problem and input required"})
		return
	}

	raw := req.Problem
	if req.Input != "" {
		// Base strips any path components a client may sneak in.
		data, err := os.ReadFile(filepath.Join(etc.Config.Dirs.Inputs, filepath.Base(req.Input)))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "input not found"})
			return
		}
		raw = string(data)
	}

	problem, err := tour.ParseProblem(raw, etc.Config.TourLimits())
	if err != nil {
		c.JSON(http.StatusBadRequest, rejectionJSON(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": tour.ScoreOutput(problem, req.Output)})
}
