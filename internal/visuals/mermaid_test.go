package visuals

import (
	"strings"
	"testing"

	"idb-monitor/internal/reconcile"
	"idb-monitor/internal/stats"
)

func TestCharts_EmptyInputRendersNothing(t *testing.T) {
	if got := GenerateUserPerformanceChart(nil); got != "" {
		t.Errorf("user chart = %q, want empty", got)
	}
	if got := GenerateVelocityChart(nil); got != "" {
		t.Errorf("velocity chart = %q, want empty", got)
	}
	if got := GenerateTargetChart(nil); got != "" {
		t.Errorf("target chart = %q, want empty", got)
	}
	if got := GenerateIssuePie(stats.Tally{{Key: "Good Condition", Count: 0}}); got != "" {
		t.Errorf("pie of zero counts = %q, want empty", got)
	}
}

func TestGenerateUserPerformanceChart(t *testing.T) {
	chart := GenerateUserPerformanceChart(stats.Tally{{Key: "aosimen", Count: 12}, {Key: "zz\"top", Count: 3}})

	for _, want := range []string{"xychart-beta", "\"Osimen Faith\"", "\"zz'top\"", "bar [12, 3]", "0 --> 14"} {
		if !strings.Contains(chart, want) {
			t.Errorf("chart missing %q:\n%s", want, chart)
		}
	}
}

func TestGenerateVelocityChart_Subsamples(t *testing.T) {
	var points []stats.VelocityPoint
	for i := 0; i < 130; i++ {
		points = append(points, stats.VelocityPoint{Date: "d", ETC: i})
	}
	chart := GenerateVelocityChart(points)

	axis := chart[strings.Index(chart, "x-axis"):]
	axis = axis[:strings.Index(axis, "\n")]
	if n := strings.Count(axis, "\"d\""); n > maxPoints+1 {
		t.Errorf("x-axis has %d labels, want at most %d", n, maxPoints+1)
	}
	if strings.Count(chart, "line [") != 3 {
		t.Errorf("expected one line per vendor:\n%s", chart)
	}
}

func TestGenerateTargetChart(t *testing.T) {
	chart := GenerateTargetChart([]reconcile.FeederTarget{{Feeder: "F1", BOQ: 40, Actual: 10}})
	if !strings.Contains(chart, "bar [40]") || !strings.Contains(chart, "bar [10]") {
		t.Errorf("unexpected chart:\n%s", chart)
	}
}

func TestGenerateRunRateChart(t *testing.T) {
	chart := GenerateRunRateChart([]stats.VendorStat{{Vendor: "ETC Workforce", RunRate: 12.25}})
	if !strings.Contains(chart, "bar [12.2]") && !strings.Contains(chart, "bar [12.3]") {
		t.Errorf("unexpected chart:\n%s", chart)
	}
}
