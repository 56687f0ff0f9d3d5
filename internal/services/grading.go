package services

import (
	"errors"
	"fmt"

	"exam-points/internal/config"
	"exam-points/internal/logger"
	"exam-points/internal/models"
)

// ThirdAttemptMarker is appended to the displayed name of a third-attempt student.
const ThirdAttemptMarker = " (third attempt)"

// LookupKind tells where a registration number was found.
type LookupKind int

const (
	NotFound LookupKind = iota
	FoundInResults
	FoundInRoster
)

func (k LookupKind) String() string {
	switch k {
	case FoundInResults:
		return "results"
	case FoundInRoster:
		return "roster"
	default:
		return "not_found"
	}
}

// LookupResult describes the outcome of resolving a registration number.
type LookupResult struct {
	Kind LookupKind

	// Result is set when Kind is FoundInResults.
	Result models.ResultRow

	// Student is set when Kind is FoundInRoster.
	Student      models.RosterRow
	DisplayName  string
	ThirdAttempt bool
}

// GradingService performs every file operation behind the form: lookups
// against results then roster, writes, deletes and loads.
type GradingService struct {
	results *models.ResultsStore
	roster  *models.Roster
	cfg     *config.Config
	logger  logger.Logger
}

// NewGradingService opens the results file, failing on a header mismatch, and
// verifies the roster columns.
func NewGradingService(cfg *config.Config, log logger.Logger) (*GradingService, error) {
	results, err := models.OpenResultsStore(cfg.OutputFile, cfg.Exercises, cfg.Comma())
	if err != nil {
		return nil, err
	}

	roster := models.NewRoster(cfg.InputFile, cfg.Comma(), cfg.Columns)
	if err := roster.Check(); err != nil {
		return nil, err
	}

	log.Info("GradingService", "files opened", map[string]interface{}{
		"roster":    roster.Path(),
		"results":   results.Path(),
		"exercises": cfg.Exercises,
		"delimiter": cfg.Delimiter,
	})

	return &GradingService{
		results: results,
		roster:  roster,
		cfg:     cfg,
		logger:  log,
	}, nil
}

// Exercises returns the configured exercise count.
func (gs *GradingService) Exercises() int { return gs.results.Exercises() }

// RosterPath returns the roster file lookups fall back to.
func (gs *GradingService) RosterPath() string { return gs.roster.Path() }

// Header returns the results file header.
func (gs *GradingService) Header() []string { return gs.results.Header() }

// Lookup resolves id against the results file first and the roster second.
func (gs *GradingService) Lookup(id string) (LookupResult, error) {
	row, ok, err := gs.results.Find(id)
	if err != nil {
		return LookupResult{}, fmt.Errorf("lookup in results: %w", err)
	}
	if ok {
		gs.logger.Debug("GradingService", "found in results", map[string]interface{}{"id": id})
		return LookupResult{Kind: FoundInResults, Result: row}, nil
	}

	student, ok, err := gs.roster.FindByRegistrationNumber(id)
	if err != nil {
		return LookupResult{}, fmt.Errorf("lookup in roster: %w", err)
	}
	if !ok {
		gs.logger.Debug("GradingService", "registration number not found", map[string]interface{}{"id": id})
		return LookupResult{Kind: NotFound}, nil
	}

	res := LookupResult{
		Kind:         FoundInRoster,
		Student:      student,
		DisplayName:  student.FullName(),
		ThirdAttempt: student.IsThirdAttempt(gs.cfg.ThirdAttemptValue),
	}
	if res.ThirdAttempt {
		res.DisplayName += ThirdAttemptMarker
	}
	gs.logger.Debug("GradingService", "found in roster", map[string]interface{}{
		"id":            id,
		"third_attempt": res.ThirdAttempt,
	})
	return res, nil
}

// Submit stores the scores for id. A non-empty editingKey updates that row in
// place; otherwise a new row is appended.
func (gs *GradingService) Submit(id string, entries []string, editingKey string) (models.ResultRow, error) {
	if id == "" {
		return models.ResultRow{}, models.ErrEmptyID
	}
	if len(entries) != gs.Exercises() {
		return models.ResultRow{}, fmt.Errorf("got %d score entries, want %d", len(entries), gs.Exercises())
	}

	row, err := models.NewResultRow(id, entries)
	if err != nil {
		return models.ResultRow{}, err
	}
	if err := gs.results.Upsert(row, editingKey); err != nil {
		return models.ResultRow{}, err
	}

	fields := map[string]interface{}{"id": id, "total": row.Total}
	if editingKey != "" {
		fields["editing_key"] = editingKey
		if editingKey != id {
			gs.logger.Warning("GradingService", "row renamed on update", fields)
		}
		gs.logger.Info("GradingService", "row updated", fields)
	} else {
		gs.logger.Info("GradingService", "row inserted", fields)
	}
	return row, nil
}

// Delete removes the stored row whose values equal the displayed values.
func (gs *GradingService) Delete(values []string) error {
	err := gs.results.Delete(values)
	switch {
	case errors.Is(err, models.ErrStaleRow):
		gs.logger.Warning("GradingService", "delete skipped, row changed on disk", map[string]interface{}{
			"values": values,
		})
		return err
	case err != nil:
		return err
	}

	gs.logger.Info("GradingService", "row deleted", map[string]interface{}{"id": values[0]})
	return nil
}

// LoadAll returns every stored row in file order.
func (gs *GradingService) LoadAll() ([]models.ResultRow, error) {
	return gs.results.LoadAll()
}
