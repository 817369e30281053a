package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gurted/gurtd/internal/adminapi/models"
	"github.com/gurted/gurtd/internal/query"
)

// IndexSearch godoc
// @Summary Raw index search
// @Description Runs a query straight through the index engine, bypassing the hot-query cache and rescorer — for debugging ranking and coverage
// @Tags debug
// @Produce json
// @Param q query string true "search query"
// @Success 200 {array} object
// @Security ApiKeyAuth
// @Router /debug/index [get]
func (h *Handler) IndexSearch(c *gin.Context) {
	if h.svc == nil || h.svc.Index == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "index unavailable"})
		return
	}
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing q"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	if size <= 0 {
		size = 10
	}

	parsed := query.Parse(q)
	hits, err := h.svc.Index.Search(parsed.AnalyzedTerms(), parsed.Filter, page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, hits)
}

// Authority godoc
// @Summary Link authority snapshot
// @Description Dumps the current per-URL link-authority scores as JSON
// @Tags debug
// @Produce json
// @Success 200 {object} object
// @Security ApiKeyAuth
// @Router /debug/authority [get]
func (h *Handler) Authority(c *gin.Context) {
	if h.svc == nil || h.svc.Authority == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "authority store unavailable"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(h.svc.Authority.ToJSON()))
}
