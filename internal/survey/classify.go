package survey

import (
	"math/rand"
	"sync"
	"time"
)

// Issue classifications.
const (
	IssueGood       = "Good Condition"
	IssueBroken     = "Broken Pole"
	IssueCrooked    = "Crooked Pole"
	IssueVandalised = "Vandalised"
	IssueNoID       = "No ID"
)

// IssueBand is one entry of the placeholder issue distribution: a draw below
// Below and above the previous band's bound picks Label.
type IssueBand struct {
	Label string
	Below float64
}

// IssueDistribution is used when a record arrives without an Issue_Type.
// Bounds are cumulative upper limits of a uniform [0,1) draw.
var IssueDistribution = []IssueBand{
	{IssueGood, 0.70},
	{IssueBroken, 0.80},
	{IssueCrooked, 0.90},
	{IssueVandalised, 0.95},
	{IssueNoID, 1.00},
}

// Classifier assigns an issue type to a record that has none.
type Classifier interface {
	Classify(rec FieldRecord) string
}

// WeightedClassifier draws from IssueDistribution.
type WeightedClassifier struct {
	mu   sync.Mutex
	draw func() float64
}

// NewWeightedClassifier seeds a classifier. A zero seed uses the clock.
func NewWeightedClassifier(seed int64) *WeightedClassifier {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return &WeightedClassifier{draw: rng.Float64}
}

// NewWeightedClassifierFunc uses draw as the uniform [0,1) source.
func NewWeightedClassifierFunc(draw func() float64) *WeightedClassifier {
	return &WeightedClassifier{draw: draw}
}

func (c *WeightedClassifier) Classify(_ FieldRecord) string {
	c.mu.Lock()
	u := c.draw()
	c.mu.Unlock()
	return pickIssue(u)
}

func pickIssue(u float64) string {
	for _, b := range IssueDistribution {
		if u < b.Below {
			return b.Label
		}
	}
	return IssueDistribution[len(IssueDistribution)-1].Label
}

// FixedClassifier always returns the same label.
type FixedClassifier string

func (f FixedClassifier) Classify(_ FieldRecord) string {
	return string(f)
}
