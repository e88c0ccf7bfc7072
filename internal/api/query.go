package api

import (
	"net/http"

	"idb-monitor/internal/dashboard"
	"idb-monitor/internal/filter"
	"idb-monitor/internal/survey"

	"github.com/gin-gonic/gin"
)

const datasetKey = "dataset"

// viewQuery is the query-string form of a dashboard view.
type viewQuery struct {
	filter.State
	View     string `form:"view" binding:"omitempty,oneof=field boq"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=500"`
}

func (s *Server) requireDataset() gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, err := s.holder.Current()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.Set(datasetKey, ds)
		c.Next()
	}
}

func datasetFrom(c *gin.Context) *survey.Dataset {
	return c.MustGet(datasetKey).(*survey.Dataset)
}

// sessionFor binds the query and replays it onto a fresh session. Selections
// that are not valid for the current dataset fall back to All.
func (s *Server) sessionFor(c *gin.Context) (*dashboard.Session, bool) {
	var q viewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	pageSize := q.PageSize
	if pageSize == 0 {
		pageSize = s.cfg.PageSize
	}

	sess := dashboard.NewSession(datasetFrom(c), pageSize)
	sess.SetState(q.State)
	if q.View != "" {
		_ = sess.SetViewMode(dashboard.ViewMode(q.View))
	}
	sess.SetSearch(q.Search)
	if q.Page > 0 {
		sess.SetPage(q.Page)
	}
	return sess, true
}
