package controllers

import (
	"errors"
	"fmt"
	"strings"

	"exam-points/internal/logger"
	"exam-points/internal/models"
	"exam-points/internal/services"
)

// FormState is the position of the entry form in its lifecycle.
type FormState int

const (
	// StateEmpty: no resolved ID, entries and submit disabled.
	StateEmpty FormState = iota
	// StateLookedUp: ID resolved, entries enabled, total not yet computed.
	StateLookedUp
	// StateReadyToSubmit: total computed, submit enabled.
	StateReadyToSubmit
)

func (s FormState) String() string {
	switch s {
	case StateLookedUp:
		return "looked_up"
	case StateReadyToSubmit:
		return "ready_to_submit"
	default:
		return "empty"
	}
}

// FormController owns the edit state of the entry form and dispatches to the
// grading service. All methods run on the UI thread.
type FormController struct {
	service      *services.GradingService
	table        *models.ResultsTable
	view         FormView
	logger       logger.Logger
	soundEnabled bool

	state      FormState
	editingKey string
}

func NewFormController(service *services.GradingService, log logger.Logger, soundEnabled bool) *FormController {
	return &FormController{
		service:      service,
		table:        models.NewResultsTable(),
		logger:       log,
		soundEnabled: soundEnabled,
	}
}

// SetView associates the view with this controller and binds its actions.
func (fc *FormController) SetView(view FormView) {
	fc.view = view
	view.Bind(FormHandlers{
		OnLookup:        fc.Lookup,
		OnComputeTotal:  func() { _ = fc.ComputeTotal() },
		OnSubmit:        func() { _ = fc.Submit() },
		OnReset:         fc.Reset,
		OnDelete:        fc.RequestDelete,
		OnReload:        func() { _ = fc.Reload() },
		OnSort:          fc.SortBy,
		OnSelectRow:     fc.SelectRow,
		OnEditRow:       fc.EditTableRow,
		OnEntriesEdited: fc.EntriesEdited,
	})
}

// Start loads the results table and puts the form into its empty state.
func (fc *FormController) Start() error {
	err := fc.Reload()
	fc.Reset()
	return err
}

func (fc *FormController) State() FormState { return fc.state }

// EditingKey returns the key of the row being edited, or "" in insert mode.
func (fc *FormController) EditingKey() string { return fc.editingKey }

// Table returns the displayed results snapshot.
func (fc *FormController) Table() *models.ResultsTable { return fc.table }

// Reset clears the form and returns to insert mode.
func (fc *FormController) Reset() {
	fc.state = StateEmpty
	fc.editingKey = ""
	fc.view.ResetForm()
}

// Lookup resolves the ID field: an existing results row enters update mode,
// a roster hit enters insert mode, a miss leaves the entries disabled.
func (fc *FormController) Lookup(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		fc.Reset()
		return
	}

	fc.state = StateEmpty
	fc.editingKey = ""
	fc.view.SetEntries(make([]string, fc.service.Exercises()))
	fc.view.SetTotal("")
	fc.view.SetSubmitEnabled(false)

	res, err := fc.service.Lookup(id)
	if err != nil {
		fc.state = StateEmpty
		fc.view.SetEntriesEnabled(false)
		fc.handleError("Lookup failed", err)
		return
	}

	switch res.Kind {
	case services.FoundInResults:
		values := res.Result.Values()
		if idx := fc.table.IndexOfKey(id); idx >= 0 {
			values = fc.table.Row(idx)
			fc.table.Select(idx)
			fc.view.SelectRow(idx)
		}
		fc.enterEditMode(values)

	case services.FoundInRoster:
		fc.state = StateLookedUp
		kind := NoticeName
		if res.ThirdAttempt {
			kind = NoticeThirdAttempt
			if fc.soundEnabled {
				fc.view.Alert()
			}
		}
		fc.view.SetNotice("Name: "+res.DisplayName, kind)
		fc.view.SetEntriesEnabled(true)

	default:
		fc.state = StateEmpty
		fc.view.SetNotice("Not found", NoticeNotFound)
		fc.view.SetEntriesEnabled(false)
	}

	fc.logger.Debug("FormController", "lookup", map[string]interface{}{
		"id":    id,
		"found": res.Kind.String(),
		"state": fc.state.String(),
	})
}

// EditTableRow enters update mode for the displayed row at index row.
func (fc *FormController) EditTableRow(row int) {
	fc.table.Select(row)
	fc.EditRow(fc.table.Row(row))
}

// EditRow enters update mode pre-filled with displayed values, without
// re-reading the results file.
func (fc *FormController) EditRow(values []string) {
	if len(values) != fc.service.Exercises()+2 {
		return
	}
	fc.Reset()
	fc.view.SetID(values[0])
	fc.enterEditMode(values)
}

func (fc *FormController) enterEditMode(values []string) {
	n := fc.service.Exercises()
	fc.editingKey = values[0]
	fc.view.SetNotice("Editing existing entry", NoticeEditing)
	fc.view.SetEntriesEnabled(true)
	fc.view.SetEntries(values[1 : n+1])
	fc.view.SetTotal(values[len(values)-1])
	fc.state = StateReadyToSubmit
	fc.view.SetSubmitEnabled(true)
}

// ComputeTotal sums the entries into the total field. On invalid input the
// total is left as is and submit is disabled.
func (fc *FormController) ComputeTotal() error {
	if fc.state == StateEmpty {
		return nil
	}

	total, err := models.SumScores(fc.view.Entries())
	if err != nil {
		fc.state = StateLookedUp
		fc.view.SetSubmitEnabled(false)
		fc.view.ShowStatus(err.Error())
		fc.logger.Debug("FormController", "sum failed", map[string]interface{}{"error": err.Error()})
		return err
	}

	fc.state = StateReadyToSubmit
	fc.view.SetTotal(models.FormatTotal(total))
	fc.view.SetSubmitEnabled(true)
	return nil
}

// EntriesEdited recomputes the total while the form is ready to submit so
// the shown total never goes stale.
func (fc *FormController) EntriesEdited() {
	if fc.state == StateReadyToSubmit {
		_ = fc.ComputeTotal()
	}
}

// Submit writes the form, reloads the table and resets the form.
func (fc *FormController) Submit() error {
	if fc.state != StateReadyToSubmit {
		return nil
	}

	id := strings.TrimSpace(fc.view.ID())
	row, err := fc.service.Submit(id, fc.view.Entries(), fc.editingKey)
	if err != nil {
		var scoreErr *models.InvalidScoreError
		if errors.As(err, &scoreErr) {
			fc.state = StateLookedUp
			fc.view.SetSubmitEnabled(false)
			fc.view.ShowStatus(err.Error())
			return err
		}
		fc.handleError("Submit failed", err)
		return err
	}

	if err := fc.Reload(); err != nil {
		return err
	}
	fc.Reset()
	fc.view.ShowStatus(fmt.Sprintf("Saved %s (total %s)", row.ID, row.Total))
	return nil
}

// SelectRow records the table selection used by RequestDelete.
func (fc *FormController) SelectRow(row int) {
	fc.table.Select(row)
}

// SortBy sorts the table by column col, toggling direction on repeat.
func (fc *FormController) SortBy(col int) {
	desc := fc.table.SortBy(col)
	fc.view.RefreshTable(fc.table)
	if sel := fc.table.Selected(); sel >= 0 {
		fc.view.SelectRow(sel)
	}

	fc.logger.Debug("FormController", "table sorted", map[string]interface{}{
		"column":     col,
		"descending": desc,
	})
}

// RequestDelete asks for confirmation and deletes the selected row. Without
// a selection it does nothing.
func (fc *FormController) RequestDelete() {
	values := fc.table.SelectedRow()
	if values == nil {
		return
	}

	msg := fmt.Sprintf("Are you sure you want to delete:\n\n%s ?", strings.Join(values, ", "))
	fc.view.Confirm("Delete Row", msg, func(confirmed bool) {
		if confirmed {
			fc.deleteRow(values)
		}
	})
}

func (fc *FormController) deleteRow(values []string) {
	err := fc.service.Delete(values)
	switch {
	case errors.Is(err, models.ErrStaleRow):
		_ = fc.Reload()
		fc.view.ShowStatus("Row changed in the results file since it was displayed; table reloaded, nothing deleted")
		return
	case err != nil:
		fc.handleError("Delete failed", err)
		return
	}

	if fc.editingKey == values[0] {
		fc.Reset()
	}
	_ = fc.Reload()
	fc.view.ShowStatus("Deleted " + values[0])
}

// Reload re-reads the results file into the table.
func (fc *FormController) Reload() error {
	rows, err := fc.service.LoadAll()
	if err != nil {
		fc.handleError("Loading results failed", err)
		return err
	}
	fc.table.Reload(fc.service.Header(), rows)
	fc.view.RefreshTable(fc.table)
	return nil
}

func (fc *FormController) handleError(title string, err error) {
	fc.logger.Error("FormController", err, map[string]interface{}{"action": title})
	fc.view.ShowStatus(title + ": " + err.Error())
	fc.view.ShowError(title, err)
}
