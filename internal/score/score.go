package score

// Package score holds the single banding policy applied to every match score in
// Fitscore. The server-side dashboard aggregates and the client-side
// recomputation both go through these functions so the two paths cannot drift.

type Band string

const (
	BandGreen  Band = "green"
	BandYellow Band = "yellow"
	BandRed    Band = "red"
)

type Bucket string

const (
	BucketExcellent Bucket = "excellent"
	BucketGood      Bucket = "good"
	BucketFair      Bucket = "fair"
	BucketPoor      Bucket = "poor"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

type Category string

const (
	CategorySkills     Category = "skills"
	CategoryExperience Category = "experience"
	CategoryEducation  Category = "education"
	CategoryFormatting Category = "formatting"
	CategoryKeywords   Category = "keywords"
	CategoryContent    Category = "content"
)

// Summary is the bucket histogram over a set of match scores.
type Summary struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Fair      int `json:"fair"`
	Poor      int `json:"poor"`
}

// ColorBand maps a score to its display color.
func ColorBand(score float64) Band {
	switch {
	case score >= 80:
		return BandGreen
	case score >= 60:
		return BandYellow
	default:
		return BandRed
	}
}

// Label maps a score to its display label.
func Label(score float64) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 80:
		return "Very Good"
	case score >= 70:
		return "Good"
	case score >= 60:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

// ClampWidth bounds a score to [0,100] for graphical bar rendering. Upstream
// values are expected to be in range already, but rendering must never overflow.
func ClampWidth(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Classify places a score into exactly one bucket. Lower bounds are closed,
// upper bounds open, except the top bucket which is closed on both ends.
func Classify(score float64) Bucket {
	switch {
	case score >= 90:
		return BucketExcellent
	case score >= 75:
		return BucketGood
	case score >= 60:
		return BucketFair
	default:
		return BucketPoor
	}
}

// Summarize folds a set of scores into the bucket histogram.
func Summarize(scores []float64) Summary {
	var s Summary
	for _, sc := range scores {
		switch Classify(sc) {
		case BucketExcellent:
			s.Excellent++
		case BucketGood:
			s.Good++
		case BucketFair:
			s.Fair++
		case BucketPoor:
			s.Poor++
		}
	}
	return s
}

// Total returns the number of scored jobs the summary covers.
func (s Summary) Total() int {
	return s.Excellent + s.Good + s.Fair + s.Poor
}

// IsPriorityIssue reports whether a suggestion priority counts toward the
// dashboard's priority-issue badge. Only critical and high qualify.
func IsPriorityIssue(p Priority) bool {
	return p == PriorityCritical || p == PriorityHigh
}

// CountPriorityIssues counts priority issues among the given priorities.
// Purely advisory for UI badges; never feeds back into the score itself.
func CountPriorityIssues(priorities []Priority) int {
	count := 0
	for _, p := range priorities {
		if IsPriorityIssue(p) {
			count++
		}
	}
	return count
}
