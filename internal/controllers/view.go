package controllers

import "exam-points/internal/models"

// NoticeKind selects how the line under the ID field is rendered.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeName
	NoticeThirdAttempt
	NoticeEditing
	NoticeNotFound
)

// FormHandlers are the user actions a view forwards to the controller.
type FormHandlers struct {
	OnLookup        func(id string)
	OnComputeTotal  func()
	OnSubmit        func()
	OnReset         func()
	OnDelete        func()
	OnReload        func()
	OnSort          func(col int)
	OnSelectRow     func(row int)
	OnEditRow       func(row int)
	OnEntriesEdited func()
}

// FormView is the surface the controller drives. The Fyne main view
// implements it; tests use an in-memory fake.
type FormView interface {
	Bind(handlers FormHandlers)

	ID() string
	SetID(id string)
	Entries() []string
	SetEntries(values []string)
	SetTotal(total string)
	SetNotice(text string, kind NoticeKind)
	SetEntriesEnabled(enabled bool)
	SetSubmitEnabled(enabled bool)
	ResetForm()

	RefreshTable(table *models.ResultsTable)
	SelectRow(row int)

	ShowStatus(message string)
	ShowError(title string, err error)
	Confirm(title, message string, callback func(bool))
	Alert()
}
