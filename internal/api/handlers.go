package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"idb-monitor/internal/dashboard"
	"idb-monitor/internal/export"
	"idb-monitor/internal/reconcile"
	"idb-monitor/internal/stats"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	csvContentType  = "text/csv"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	reconciliationXLSXName = "dt_analysis_export.xlsx"
	assetsXLSXName         = "assets_export.xlsx"
)

func (s *Server) handleHealth(c *gin.Context) {
	ds, err := s.holder.Current()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":             "ok",
		"load_id":            ds.LoadID,
		"loaded_at":          ds.LoadedAt,
		"field_records":      len(ds.Field),
		"boq_records":        len(ds.BOQ),
		"synthesized_issues": ds.SynthesizedIssues,
	})
}

func (s *Server) handleRefresh(c *gin.Context) {
	if err := s.holder.Refresh(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	s.handleHealth(c)
}

func (s *Server) handleOptions(c *gin.Context) {
	sess, ok := s.sessionFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"filters": sess.State(),
		"options": sess.Options(),
	})
}

func (s *Server) handleRecords(c *gin.Context) {
	sess, ok := s.sessionFor(c)
	if !ok {
		return
	}

	records := sess.Filtered()
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(s.cfg.PageSize)))
	p := reconcile.Paginate(len(records), page, pageSize)

	c.JSON(http.StatusOK, gin.H{
		"filters": sess.State(),
		"page":    p,
		"records": reconcile.Slice(records, p),
	})
}

func (s *Server) handleOverview(c *gin.Context) {
	sess, ok := s.sessionFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Overview())
}

func (s *Server) handleBreakdown(c *gin.Context) {
	sess, ok := s.sessionFor(c)
	if !ok {
		return
	}
	filtered := sess.Filtered()
	dimension := c.Param("dimension")

	switch dimension {
	case "issues_by_user":
		c.JSON(http.StatusOK, stats.IssuesByUser(filtered))
		return
	case "velocity":
		c.JSON(http.StatusOK, stats.Velocity(filtered))
		return
	case "vendor_performance":
		c.JSON(http.StatusOK, stats.VendorPerformance(filtered))
		return
	}

	order, err := stats.ParseOrder(c.Query("order"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tally, err := stats.Breakdown(filtered, dimension)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "dimensions": stats.BreakdownDimensions()})
		return
	}
	tally = stats.Rank(tally, order)
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		tally = tally.Top(limit)
	}

	c.JSON(http.StatusOK, gin.H{
		"dimension": dimension,
		"filters":   sess.State(),
		"total":     tally.Total(),
		"buckets":   tally,
	})
}

func (s *Server) handleReconciliation(c *gin.Context) {
	sess, ok := s.sessionFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"filters":     sess.State(),
		"view_mode":   sess.ViewMode(),
		"kpis":        sess.KPIs(),
		"table":       sess.Table(),
		"suggestions": sess.Suggestions(sess.Search()),
	})
}

func (s *Server) handleVariance(c *gin.Context) {
	sess, ok := s.sessionFor(c)
	if !ok {
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	rows := sess.Variance()
	c.JSON(http.StatusOK, gin.H{
		"filters":        sess.State(),
		"rows":           rows,
		"feeder_targets": reconcile.FeederTargets(rows, limit),
		"top_dts":        reconcile.TopDTsByTarget(rows, limit),
	})
}

func (s *Server) handleRecommendations(c *gin.Context) {
	sess, ok := s.sessionFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Recommendations())
}

func (s *Server) handleMap(c *gin.Context) {
	sess, ok := s.sessionFor(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	limit = min(limit, dashboard.MaxMapPoints)
	points := dashboard.MapPoints(sess.Filtered(), limit)
	c.JSON(http.StatusOK, gin.H{
		"filters": sess.State(),
		"count":   len(points),
		"points":  points,
	})
}

func attachment(c *gin.Context, contentType, filename string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
}

func (s *Server) exportFailed(c *gin.Context, err error) {
	if errors.Is(err, export.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Export failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
}

func (s *Server) handleExportReconciliationCSV(c *gin.Context) {
	sess, ok := s.sessionFor(c)
	if !ok {
		return
	}
	rows := sess.ExportRows()
	if len(rows) == 0 {
		s.exportFailed(c, export.ErrNoRows)
		return
	}
	attachment(c, csvContentType, export.ReconciliationFilename)
	if err := export.WriteReconciliationCSV(c.Writer, rows); err != nil {
		log.Error().Err(err).Msg("CSV export interrupted")
	}
}

func (s *Server) handleExportReconciliationXLSX(c *gin.Context) {
	sess, ok := s.sessionFor(c)
	if !ok {
		return
	}
	rows := sess.ExportRows()
	if len(rows) == 0 {
		s.exportFailed(c, export.ErrNoRows)
		return
	}
	attachment(c, xlsxContentType, reconciliationXLSXName)
	if err := export.WriteReconciliationXLSX(c.Writer, rows); err != nil {
		s.exportFailed(c, err)
	}
}

func (s *Server) handleExportAssetsXLSX(c *gin.Context) {
	sess, ok := s.sessionFor(c)
	if !ok {
		return
	}
	records := sess.Filtered()
	if len(records) == 0 {
		s.exportFailed(c, export.ErrNoRows)
		return
	}
	attachment(c, xlsxContentType, assetsXLSXName)
	if err := export.WriteAssetsXLSX(c.Writer, records); err != nil {
		s.exportFailed(c, err)
	}
}
