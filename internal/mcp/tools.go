package mcp

import (
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools(server *sdk.Server) {
	sdk.AddTool(server, &sdk.Tool{
		Name: "get_overview",
		Description: "Get the headline view of the survey under the current filters: KPI cards, executive summary, key insights, run rate and vendor performance. " +
			"Guidance: call 'get_filter_options' first if the user refers to a vendor, feeder, DT or officer by name.",
	}, s.handleGetOverview)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "get_filter_options",
		Description: "List the current filter selections and the values each dimension currently offers. Options cascade: vendor narrows every other dimension, feeder narrows DTs, DT narrows uprisers.",
	}, s.handleGetFilterOptions)

	sdk.AddTool(server, &sdk.Tool{
		Name: "set_filter",
		Description: "Select a value on one filter dimension (vendor, bu, undertaking, user, dt, upriser, feeder, material, date). Use 'All' to clear a dimension. " +
			"Changing the vendor resets every dependent selection. The value must be one of the options returned by 'get_filter_options'.",
	}, s.handleSetFilter)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "reset_filters",
		Description: "Clear every filter, the table search and the page cursor, and return to field view.",
	}, s.handleResetFilters)

	sdk.AddTool(server, &sdk.Tool{
		Name: "get_breakdown",
		Description: "Count the filtered records along a dimension (vendor, user, date, feeder, dt, business_unit, undertaking, pole_type, material, issue). " +
			"Also accepts 'issues_by_user', 'velocity' and 'vendor_performance' for the chart series.",
	}, s.handleGetBreakdown)

	sdk.AddTool(server, &sdk.Tool{
		Name: "get_reconciliation",
		Description: "Get one page of the DT/feeder reconciliation table: BOQ target against surveyed poles per DT, with gap, progress and status. " +
			"Optionally set the search text, page or view mode ('field' or 'boq') first.",
	}, s.handleGetReconciliation)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "get_variance",
		Description: "Compare every BOQ line in scope with the field survey (total, good and bad poles) and list the feeders and DTs with the largest targets.",
	}, s.handleGetVariance)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "get_recommendations",
		Description: "Assess each contracted vendor over the full dataset (filters do not apply): run rate against target, coverage, defect rate, data lag and recommended actions.",
	}, s.handleGetRecommendations)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "export_reconciliation_csv",
		Description: "Write the searched reconciliation view to a CSV file and return its path. Without a path the file goes to the exports folder of the data directory.",
	}, s.handleExportReconciliationCSV)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "refresh_data",
		Description: "Re-fetch the field and BOQ datasets. Selections that are still valid are kept; on failure the previous data stays loaded.",
	}, s.handleRefreshData)
}
