package interfaces

import "pom_automation/domain/entities"

// ReportStore persists the results of smoke runs
type ReportStore interface {
	// Save writes report and returns where it was stored
	Save(report *entities.RunReport) (string, error)

	// Load reads a previously saved report by its run id
	Load(id string) (*entities.RunReport, error)

	// Latest returns the most recently saved report, or nil when there is none
	Latest() (*entities.RunReport, error)
}
