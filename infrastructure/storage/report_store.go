package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
)

const latestFile = "latest.json"

type reportStore struct {
	dir string
}

// NewReportStore - creates a store writing JSON reports under dir
func NewReportStore(dir string) (interfaces.ReportStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}
	return &reportStore{dir: dir}, nil
}

// Save - writes <id>.json and refreshes latest.json
func (s *reportStore) Save(report *entities.RunReport) (string, error) {
	if report.ID == "" {
		return "", fmt.Errorf("report has no id")
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, report.ID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.dir, latestFile), data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// Load - reads the report of run id
func (s *reportStore) Load(id string) (*entities.RunReport, error) {
	return s.read(filepath.Join(s.dir, id+".json"))
}

// Latest - reads the last saved report; nil if nothing was saved yet
func (s *reportStore) Latest() (*entities.RunReport, error) {
	report, err := s.read(filepath.Join(s.dir, latestFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return report, err
}

func (s *reportStore) read(path string) (*entities.RunReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var report entities.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &report, nil
}
