package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pincheck/internal/models"
	"pincheck/internal/store"
)

type PincodeController struct {
	Store store.Store
}

// GetPincodes returns the latest check per pincode
func (pc *PincodeController) GetPincodes(c *gin.Context) {
	ctx := c.Request.Context()
	limit := getLimitWithDefault(c, 100)

	checks, err := pc.Store.Checks(ctx)
	if err != nil {
		log.Printf("failed to read checks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	latest := models.LatestChecks(checks)
	if len(latest) > limit {
		latest = latest[:limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"pincodes": latest,
	})
}

// GetPincode returns the latest check and all stored detail rows for one code
func (pc *PincodeController) GetPincode(c *gin.Context) {
	ctx := c.Request.Context()
	code := c.Param("code")

	checks, err := pc.Store.Checks(ctx)
	if err != nil {
		log.Printf("failed to read checks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	var check *models.PincodeCheck
	for _, latest := range models.LatestChecks(checks) {
		if latest.Pincode == code {
			found := latest
			check = &found
			break
		}
	}
	if check == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pincode not found"})
		return
	}

	details, err := pc.Store.Details(ctx)
	if err != nil {
		log.Printf("failed to read details: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	var matched []models.PincodeDetail
	for _, d := range details {
		if d.Pincode == code {
			matched = append(matched, d)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"check":   check,
		"details": matched,
	})
}

// GetSummary returns record counts grouped by status
func (pc *PincodeController) GetSummary(c *gin.Context) {
	ctx := c.Request.Context()

	checks, err := pc.Store.Checks(ctx)
	if err != nil {
		log.Printf("failed to read checks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	counts := map[models.Status]int{}
	for _, check := range models.LatestChecks(checks) {
		counts[check.Status]++
	}

	c.JSON(http.StatusOK, gin.H{
		"found":     counts[models.StatusFound],
		"not_found": counts[models.StatusNotFound],
		"error":     counts[models.StatusError],
	})
}

func getLimitWithDefault(c *gin.Context, defaultValue int) int {
	var err error
	limit := defaultValue
	if c.Query("limit") != "" {
		limit, err = strconv.Atoi(c.Query("limit"))
		if err != nil || limit < 0 {
			log.Printf("invalid limit %q, using default value: %d", c.Query("limit"), defaultValue)
			return defaultValue
		}
	}
	return limit
}
