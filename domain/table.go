package domain

// Table is a mongo collection name
type Table string

const (
	TableFarmActivities Table = "farm_activities"
)
