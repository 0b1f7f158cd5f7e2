package main

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/variantsmith/mutscan/pkg/data"
)

func makeRouter(db *sql.DB) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/runs", runsHandler(db))
	api.GET("/runs/:id", runHandler(db))
	api.GET("/runs/:id/candidates", runCandidatesHandler(db))
	api.GET("/stats", statsHandler(db))

	return r
}

func statsHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := data.GetStats(db)
		if err != nil {
			log.Errorf("failed to get stats: %s", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "error querying stats",
			})
			return
		}

		c.JSON(http.StatusOK, stats)
	}
}

func runsHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := queryResultLimitDefault
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}

		list, err := data.GetRuns(db, limit)
		if err != nil {
			log.Errorf("failed to get runs: %s", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "error querying runs",
			})
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

func runHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "invalid run id",
			})
			return
		}

		run, err := data.GetRun(db, id)
		if err != nil {
			log.Errorf("failed to get run %d: %s", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "error querying run",
			})
			return
		}
		if run == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "run not found",
			})
			return
		}

		c.JSON(http.StatusOK, run)
	}
}

func runCandidatesHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "invalid run id",
			})
			return
		}

		list, err := data.GetRunCandidates(db, id)
		if err != nil {
			log.Errorf("failed to get candidates for run %d: %s", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "error querying run candidates",
			})
			return
		}

		c.JSON(http.StatusOK, list)
	}
}
