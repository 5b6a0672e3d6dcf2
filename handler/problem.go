package handler

import (
	"net/http"

	"tourjudge/etc"
	"tourjudge/service/grader"
	"tourjudge/tour"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// rejectionJSON shapes a tour.Error for API clients. Line is omitted when
// the rejection is not attributable to a single line.
func rejectionJSON(err error) gin.H {
	h := gin.H{"error": err.Error()}
	if terr, ok := err.(*tour.Error); ok {
		h["kind"] = terr.Kind.String()
		if terr.Line > 0 {
			h["line"] = terr.Line
		}
	}
	return h
}

// HandleProblemValidate validates raw problem text from the request body
// and reports its shape, or the precise rejection reason.
func HandleProblemValidate(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	problem, err := tour.ParseProblem(string(raw), etc.Config.TourLimits())
	if err != nil {
		c.JSON(http.StatusBadRequest, rejectionJSON(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"n_site": problem.NSite(), "n_day": problem.NDay()})
}

// HandleInputList lists the valid problem files in the inputs directory.
func HandleInputList(c *gin.Context) {
	inputs, err := grader.LoadInputs(etc.Config.Dirs.Inputs, etc.Config.TourLimits())
	if err != nil {
		log.WithError(err).Error("Failed to load inputs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load inputs"})
		return
	}

	list := make([]gin.H, 0, len(inputs))
	for _, in := range inputs {
		list = append(list, gin.H{
			"name":   in.Name,
			"n_site": in.Problem.NSite(),
			"n_day":  in.Problem.NDay(),
			"tags":   in.Tags,
		})
	}
	c.JSON(http.StatusOK, gin.H{"inputs": list})
}
