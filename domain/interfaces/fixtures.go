package interfaces

import "pom_automation/domain/entities"

// FixtureSource loads the static test data of a run
type FixtureSource interface {
	Load() (*entities.Fixtures, error)
}
