package engine

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"idb-monitor/internal/survey"
)

// Output file names, matching the default FIELD_DATA_FALLBACK and BOQ_DATA_FALLBACK layout.
const (
	FieldFile = "field.json"
	BOQFile   = "boq.json"
)

type GeneratorConfig struct {
	Scenario string // "steady", "lagging" or "sparse"
	Count    int
	Days     int
	Seed     int64
	Now      time.Time
}

var (
	etcUsers   = []string{"aosimen", "aayogu", "aoluwatobi", "aedozie", "apatrick", "agbolahan"}
	jesomUsers = []string{"sbolaji", "omukaila", "ojamiu", "yakin", "ysalaudeen"}

	units = []struct{ bu, ut string }{
		{"Shomolu", "Bariga"},
		{"Shomolu", "Somolu"},
		{"Ikeja", "Ojodu"},
		{"Ikeja", "Opebi"},
		{"Ikorodu", "Ijede"},
	}

	poleTypes = []string{"LT Pole", "HT Pole", "LT Pole", "LT Pole"}
	issues    = []string{survey.IssueBroken, survey.IssueCrooked, survey.IssueVandalised, survey.IssueNoID}
)

type dtSite struct {
	feeder, dt string
	bu, ut     string
	lat, lon   float64
	uprisers   int
}

// Generate builds a synthetic field survey and the BOQ that plans it. Every DT
// visited in the field has a BOQ line; a few BOQ lines are never visited.
func Generate(cfg GeneratorConfig) ([]map[string]any, []map[string]any) {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if cfg.Days < 1 {
		cfg.Days = 14
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = cfg.Now.UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// 1. Network: feeders with a handful of DTs each
	var sites []dtSite
	for f := 0; f < 6; f++ {
		unit := units[f%len(units)]
		feeder := fmt.Sprintf("11KV %s Feeder %d", unit.ut, f+1)
		for d := 0; d < 3+rng.Intn(3); d++ {
			sites = append(sites, dtSite{
				feeder:   feeder,
				dt:       fmt.Sprintf("%s DT %d", unit.ut, f*10+d+1),
				bu:       unit.bu,
				ut:       unit.ut,
				lat:      6.45 + rng.Float64()*0.2,
				lon:      3.30 + rng.Float64()*0.2,
				uprisers: 2 + rng.Intn(3),
			})
		}
	}
	visited := sites[:len(sites)*4/5]

	// 2. Field records
	start := cfg.Now.AddDate(0, 0, -cfg.Days)
	counts := make(map[string]int)
	field := make([]map[string]any, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		site := visited[rng.Intn(len(visited))]
		day := rng.Intn(cfg.Days)

		users := etcUsers
		if rng.Float64() < 0.45 {
			users = jesomUsers
			if cfg.Scenario == "lagging" && day > cfg.Days/2 && rng.Float64() < 0.7 {
				users = etcUsers
			}
		}
		user := users[rng.Intn(len(users))]

		ts := start.AddDate(0, 0, day).Add(time.Duration(7*60+rng.Intn(10*60)) * time.Minute)
		material := "Concrete"
		if rng.Float64() < 0.3 {
			material = "Wooden"
		}

		rec := map[string]any{
			"Lt PoleSLRN":    fmt.Sprintf("SLRN-%06d", i+1),
			"User":           user,
			"DT Name":        site.dt,
			"Feeder":         site.feeder,
			"Bussines Unit":  site.bu,
			"Undertaking":    site.ut,
			"UpriserNo":      1 + rng.Intn(site.uprisers),
			"Date/timestamp": ts.Format("2006-01-02 15:04:05"),
			"Pole Material":  material,
			"Type of Pole":   poleTypes[rng.Intn(len(poleTypes))],
			"Latitude":       fmt.Sprintf("%.6f", site.lat+rng.NormFloat64()*0.002),
			"Longitude":      site.lon + rng.NormFloat64()*0.002,
		}
		rec[survey.KeyBuildings] = fmt.Sprintf("%d", rng.Intn(8))
		if rng.Float64() < 0.25 {
			rec[survey.KeyIssueType] = issues[rng.Intn(len(issues))]
		}
		if cfg.Scenario == "sparse" {
			sparsify(rng, rec)
		}

		field = append(field, rec)
		counts[site.feeder+"|"+site.dt]++
	}

	// 3. BOQ: targets above what has been surveyed so far
	boq := make([]map[string]any, 0, len(sites))
	for _, site := range sites {
		done := counts[site.feeder+"|"+site.dt]
		total := done + 5 + rng.Intn(20)
		bad := rng.Intn(total/4 + 1)
		boq = append(boq, map[string]any{
			"FEEDER NAME":       site.feeder,
			"DT NAME":           site.dt,
			"POLES Grand Total": total,
			"GOOD":              fmt.Sprintf("%d", total-bad),
			"BAD":               bad,
			"NEW POLE":          rng.Intn(3),
		})
	}

	return field, boq
}

// sparsify blanks out fields the way partially synced devices do.
func sparsify(rng *rand.Rand, rec map[string]any) {
	for _, key := range []string{"DT Name", "Feeder", "Date/timestamp", "Pole Material", "Latitude"} {
		if rng.Float64() < 0.1 {
			rec[key] = ""
		}
	}
}

// Save writes both datasets as JSON arrays into outDir.
func Save(outDir string, field, boq []map[string]any) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(outDir, FieldFile), field); err != nil {
		return err
	}
	return writeJSON(filepath.Join(outDir, BOQFile), boq)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
