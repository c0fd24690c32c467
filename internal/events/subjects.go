package events

const (
	StreamName   = "COMPASS_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectRankCompleted(studentID string) string { return "compass.rank." + studentID + ".completed" }
func SubjectMatchScored(studentID string) string   { return "compass.match." + studentID + ".scored" }

// Catalog lifecycle subjects
func SubjectCatalogRefreshed() string { return "compass.catalog.refreshed" }
func SubjectCatalogDegraded() string  { return "compass.catalog.degraded" }
