package mcp

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"idb-monitor/internal/dashboard"
	"idb-monitor/internal/export"
	"idb-monitor/internal/filter"
	"idb-monitor/internal/reconcile"
	"idb-monitor/internal/stats"
	"idb-monitor/internal/visuals"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

const defaultTopN = 10

type noArgs struct{}

type setFilterArgs struct {
	Dimension string `json:"dimension" jsonschema:"filter dimension: vendor, bu, undertaking, user, dt, upriser, feeder, material or date"`
	Value     string `json:"value" jsonschema:"value to select, or All to clear the dimension"`
}

type breakdownArgs struct {
	Dimension string `json:"dimension" jsonschema:"dimension to count along"`
	Order     string `json:"order,omitempty" jsonschema:"desc (default), asc, alpha or first_seen"`
	Limit     int    `json:"limit,omitempty" jsonschema:"keep only the first n buckets after ordering"`
}

type reconciliationArgs struct {
	Search   *string `json:"search,omitempty" jsonschema:"search text over DT, feeder, vendor, business unit, undertaking and officer names; empty clears"`
	Page     int     `json:"page,omitempty" jsonschema:"1-based page number"`
	ViewMode string  `json:"view_mode,omitempty" jsonschema:"field or boq"`
}

type varianceArgs struct {
	Limit int `json:"limit,omitempty" jsonschema:"number of feeders and DTs in the target rankings (default 10)"`
}

type exportArgs struct {
	Path string `json:"path,omitempty" jsonschema:"destination file; defaults to the exports folder of the data directory"`
}

type filterView struct {
	Filters         filter.State   `json:"filters"`
	Options         filter.Options `json:"options"`
	FilteredRecords int            `json:"filtered_records"`
}

func newFilterView(sess *dashboard.Session) filterView {
	return filterView{
		Filters:         sess.State(),
		Options:         sess.Options(),
		FilteredRecords: len(sess.Filtered()),
	}
}

func (s *Server) handleGetOverview(ctx context.Context, _ *sdk.CallToolRequest, _ noArgs) (*sdk.CallToolResult, any, error) {
	var res *sdk.CallToolResult
	err := s.withSession(ctx, func(sess *dashboard.Session) error {
		overview := sess.Overview()
		filtered := sess.Filtered()
		res = s.textResult(overview,
			visuals.GenerateUserPerformanceChart(stats.Rank(stats.ByUser(filtered), stats.Descending).Top(defaultTopN)),
			visuals.GenerateVelocityChart(stats.Velocity(filtered)),
			visuals.GenerateRunRateChart(overview.Vendors),
			visuals.GenerateIssuePie(stats.ByIssue(filtered)),
			visuals.GenerateMaterialPie(stats.ByMaterial(filtered)),
		)
		return nil
	})
	return res, nil, err
}

func (s *Server) handleGetFilterOptions(ctx context.Context, _ *sdk.CallToolRequest, _ noArgs) (*sdk.CallToolResult, any, error) {
	var res *sdk.CallToolResult
	err := s.withSession(ctx, func(sess *dashboard.Session) error {
		res = s.textResult(newFilterView(sess))
		return nil
	})
	return res, nil, err
}

func (s *Server) handleSetFilter(ctx context.Context, _ *sdk.CallToolRequest, args setFilterArgs) (*sdk.CallToolResult, any, error) {
	dim, err := filter.ParseDimension(args.Dimension)
	if err != nil {
		return nil, nil, err
	}

	var res *sdk.CallToolResult
	err = s.withSession(ctx, func(sess *dashboard.Session) error {
		if err := sess.SetFilter(dim, args.Value); err != nil {
			return err
		}
		log.Debug().Str("dimension", string(dim)).Str("value", args.Value).Msg("Filter set")
		res = s.textResult(newFilterView(sess))
		return nil
	})
	return res, nil, err
}

func (s *Server) handleResetFilters(ctx context.Context, _ *sdk.CallToolRequest, _ noArgs) (*sdk.CallToolResult, any, error) {
	var res *sdk.CallToolResult
	err := s.withSession(ctx, func(sess *dashboard.Session) error {
		sess.Reset()
		res = s.textResult(newFilterView(sess))
		return nil
	})
	return res, nil, err
}

func (s *Server) handleGetBreakdown(ctx context.Context, _ *sdk.CallToolRequest, args breakdownArgs) (*sdk.CallToolResult, any, error) {
	order, err := stats.ParseOrder(args.Order)
	if err != nil {
		return nil, nil, err
	}

	var res *sdk.CallToolResult
	err = s.withSession(ctx, func(sess *dashboard.Session) error {
		filtered := sess.Filtered()

		switch args.Dimension {
		case "issues_by_user":
			res = s.textResult(stats.IssuesByUser(filtered))
			return nil
		case "velocity":
			points := stats.Velocity(filtered)
			res = s.textResult(points, visuals.GenerateVelocityChart(points))
			return nil
		case "vendor_performance":
			perf := stats.VendorPerformance(filtered)
			res = s.textResult(perf, visuals.GenerateRunRateChart(perf))
			return nil
		}

		tally, err := stats.Breakdown(filtered, args.Dimension)
		if err != nil {
			return err
		}
		tally = stats.Rank(tally, order)
		if args.Limit > 0 {
			tally = tally.Top(args.Limit)
		}

		var chart string
		switch args.Dimension {
		case "user":
			chart = visuals.GenerateUserPerformanceChart(tally)
		case "feeder":
			chart = visuals.GenerateTopFeedersChart(tally)
		case "issue":
			chart = visuals.GenerateIssuePie(tally)
		case "material":
			chart = visuals.GenerateMaterialPie(tally)
		}

		res = s.textResult(map[string]any{
			"dimension": args.Dimension,
			"total":     tally.Total(),
			"buckets":   tally,
		}, chart)
		return nil
	})
	return res, nil, err
}

func (s *Server) handleGetReconciliation(ctx context.Context, _ *sdk.CallToolRequest, args reconciliationArgs) (*sdk.CallToolResult, any, error) {
	var res *sdk.CallToolResult
	err := s.withSession(ctx, func(sess *dashboard.Session) error {
		if args.ViewMode != "" {
			if err := sess.SetViewMode(dashboard.ViewMode(args.ViewMode)); err != nil {
				return err
			}
		}
		if args.Search != nil {
			sess.SetSearch(*args.Search)
		}
		if args.Page > 0 {
			sess.SetPage(args.Page)
		}

		res = s.textResult(map[string]any{
			"view_mode":   sess.ViewMode(),
			"kpis":        sess.KPIs(),
			"table":       sess.Table(),
			"suggestions": sess.Suggestions(sess.Search()),
		})
		return nil
	})
	return res, nil, err
}

func (s *Server) handleGetVariance(ctx context.Context, _ *sdk.CallToolRequest, args varianceArgs) (*sdk.CallToolResult, any, error) {
	limit := args.Limit
	if limit <= 0 {
		limit = defaultTopN
	}

	var res *sdk.CallToolResult
	err := s.withSession(ctx, func(sess *dashboard.Session) error {
		rows := sess.Variance()
		targets := reconcile.FeederTargets(rows, limit)
		res = s.textResult(map[string]any{
			"rows":           rows,
			"feeder_targets": targets,
			"top_dts":        reconcile.TopDTsByTarget(rows, limit),
		}, visuals.GenerateTargetChart(targets))
		return nil
	})
	return res, nil, err
}

func (s *Server) handleGetRecommendations(ctx context.Context, _ *sdk.CallToolRequest, _ noArgs) (*sdk.CallToolResult, any, error) {
	var res *sdk.CallToolResult
	err := s.withSession(ctx, func(sess *dashboard.Session) error {
		res = s.textResult(sess.Recommendations())
		return nil
	})
	return res, nil, err
}

func (s *Server) handleExportReconciliationCSV(ctx context.Context, _ *sdk.CallToolRequest, args exportArgs) (*sdk.CallToolResult, any, error) {
	path := args.Path
	if path == "" {
		path = filepath.Join(s.cfg.DataPath, "exports", export.ReconciliationFilename)
	}

	var res *sdk.CallToolResult
	err := s.withSession(ctx, func(sess *dashboard.Session) error {
		rows := sess.ExportRows()
		if err := writeFileAtomic(path, func(w io.Writer) error {
			return export.WriteReconciliationCSV(w, rows)
		}); err != nil {
			return fmt.Errorf("export reconciliation: %w", err)
		}
		log.Info().Str("path", path).Int("rows", len(rows)).Msg("Reconciliation exported")
		res = s.textResult(map[string]any{"path": path, "rows": len(rows)})
		return nil
	})
	return res, nil, err
}

func (s *Server) handleRefreshData(ctx context.Context, _ *sdk.CallToolRequest, _ noArgs) (*sdk.CallToolResult, any, error) {
	if err := s.holder.Refresh(ctx); err != nil {
		return nil, nil, err
	}

	var res *sdk.CallToolResult
	err := s.withSession(ctx, func(sess *dashboard.Session) error {
		ds := sess.Dataset()
		res = s.textResult(map[string]any{
			"load_id":            ds.LoadID,
			"loaded_at":          ds.LoadedAt,
			"field_records":      len(ds.Field),
			"boq_records":        len(ds.BOQ),
			"synthesized_issues": ds.SynthesizedIssues,
			"filters":            sess.State(),
		})
		return nil
	})
	return res, nil, err
}
