package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"drivebook/services/availability"
	"drivebook/services/search"
	"drivebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// SearchHandler serves the landing and availability-search endpoints.
type SearchHandler struct {
	Svc    search.SearchService
	Logger *zap.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(svc search.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{Svc: svc, Logger: logger}
}

// IndexHandler returns the landing payload.
func (h *SearchHandler) IndexHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"today": time.Now().Format("2006-01-02"),
	})
}

// SubmitSearchHandler validates the landing form and redirects to search.
func (h *SearchHandler) SubmitSearchHandler(c *gin.Context) {
	var input struct {
		ZipCode string `form:"zip_code" json:"zipCode" binding:"required"`
		Date    string `form:"date" json:"date" binding:"required"`
	}
	if err := c.ShouldBind(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if !zipPattern.MatchString(input.ZipCode) {
		utils.JSONError(c, http.StatusBadRequest, "invalid zip", "zip code must be 5 digits")
		return
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "date must be YYYY-MM-DD")
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/search?zip=%s&date=%s", input.ZipCode, input.Date))
}

// SearchHandler answers GET /search?zip=&date= with per-partner availability.
// A partner whose calendar fetch failed appears with an error entry, so the
// client can render "temporarily unavailable" instead of "fully booked".
func (h *SearchHandler) SearchHandler(c *gin.Context) {
	zip := c.Query("zip")
	dateStr := c.Query("date")

	if !zipPattern.MatchString(zip) {
		utils.JSONError(c, http.StatusBadRequest, "invalid zip", "zip code must be 5 digits")
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "date must be YYYY-MM-DD")
		return
	}

	result, err := h.Svc.SearchAvailability(c.Request.Context(), zip, date)
	if err != nil {
		if availability.IsConfigurationError(err) {
			utils.JSONError(c, http.StatusInternalServerError, "search misconfigured", err.Error())
			return
		}
		h.Logger.Error("availability search failed", zap.String("zip", zip), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "search failed", "could not compute availability")
		return
	}
	c.JSON(http.StatusOK, result)
}
