package views

import (
	"fmt"
	"io"
	"os"

	"exam-points/internal/controllers"
	"exam-points/internal/models"
	"exam-points/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

var _ controllers.FormView = (*MainView)(nil)

// MainView is the exam points window: entry form on the left, results table
// on the right, status bar at the bottom. It implements controllers.FormView.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	form          *components.FormPanel
	toolbar       *components.Toolbar
	table         *components.ResultsTable
	statusBar     *components.StatusBar

	resultsPath string
	bell        io.Writer
	handlers    controllers.FormHandlers
	quit        func()
}

// NewMainView creates the main view for a results file with the given
// number of exercises.
func NewMainView(window fyne.Window, exercises int, resultsPath string) *MainView {
	view := &MainView{
		window:      window,
		resultsPath: resultsPath,
		bell:        os.Stdout,
		quit:        window.Close,
	}

	view.initializeComponents(exercises)
	view.buildLayout()
	view.setupEventHandlers()
	view.setupKeyboard()
	view.setupMenus()

	return view
}

// initializeComponents creates all UI components
func (mv *MainView) initializeComponents(exercises int) {
	mv.form = components.NewFormPanel(exercises)
	mv.toolbar = components.NewToolbar()
	mv.table = components.NewResultsTable()
	mv.statusBar = components.NewStatusBar()
}

// buildLayout constructs the main layout
func (mv *MainView) buildLayout() {
	left := widget.NewCard("", "", mv.form.GetContainer())
	right := container.NewBorder(mv.toolbar.GetContainer(), nil, nil, nil, mv.table.Widget())

	split := container.NewHSplit(left, right)
	split.SetOffset(0.25)

	mv.mainContainer = container.NewBorder(
		nil,                         // top
		mv.statusBar.GetContainer(), // bottom
		nil,                         // left
		nil,                         // right
		split,                       // center
	)

	mv.window.SetContent(mv.mainContainer)
}

// setupEventHandlers connects component events to the bound handlers
func (mv *MainView) setupEventHandlers() {
	mv.form.SetLookupHandler(func(id string) { call1(mv.handlers.OnLookup, id) })
	mv.form.SetComputeHandler(func() { call(mv.handlers.OnComputeTotal) })
	mv.form.SetSubmitHandler(func() { call(mv.handlers.OnSubmit) })
	mv.form.SetResetHandler(func() { call(mv.handlers.OnReset) })
	mv.form.SetEditedHandler(func() { call(mv.handlers.OnEntriesEdited) })
	mv.form.SetExitHandler(func() { mv.quit() })
	mv.form.SetFullscreenHandler(mv.ToggleFullscreen)

	mv.toolbar.SetReloadHandler(func() { call(mv.handlers.OnReload) })
	mv.toolbar.SetDeleteHandler(func() { call(mv.handlers.OnDelete) })
	mv.toolbar.SetFullscreenHandler(mv.ToggleFullscreen)

	mv.table.SetSortHandler(func(col int) { call1(mv.handlers.OnSort, col) })
	mv.table.SetSelectHandler(func(row int) { call1(mv.handlers.OnSelectRow, row) })
	mv.table.SetEditHandler(func(row int) { call1(mv.handlers.OnEditRow, row) })
	mv.table.SetDeleteHandler(func() { call(mv.handlers.OnDelete) })
	mv.table.SetSubmitHandler(func() { call(mv.handlers.OnSubmit) })
	mv.table.SetResetHandler(func() { call(mv.handlers.OnReset) })
	mv.table.SetFullscreenHandler(mv.ToggleFullscreen)
}

// setupKeyboard binds the window keys for when nothing has focus. Focused
// widgets route the same keys themselves.
func (mv *MainView) setupKeyboard() {
	mv.window.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		case fyne.KeyReturn, fyne.KeyEnter:
			call(mv.handlers.OnSubmit)
		case fyne.KeyEscape:
			call(mv.handlers.OnReset)
		case fyne.KeyDelete:
			call(mv.handlers.OnDelete)
		case fyne.KeyF11:
			mv.ToggleFullscreen()
		}
	})
}

func (mv *MainView) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Reload Results", func() { call(mv.handlers.OnReload) }),
		fyne.NewMenuItem("Delete Selected Row...", func() { call(mv.handlers.OnDelete) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Form", func() { call(mv.handlers.OnReset) }),
	)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Toggle Fullscreen", mv.ToggleFullscreen),
	)
	mv.window.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu))
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

func call1[T any](fn func(T), v T) {
	if fn != nil {
		fn(v)
	}
}

// Bind stores the controller's handlers.
func (mv *MainView) Bind(handlers controllers.FormHandlers) {
	mv.handlers = handlers
}

func (mv *MainView) ID() string { return mv.form.ID() }

func (mv *MainView) SetID(id string) { mv.form.SetID(id) }

func (mv *MainView) Entries() []string { return mv.form.Entries() }

func (mv *MainView) SetEntries(values []string) { mv.form.SetEntries(values) }

func (mv *MainView) SetTotal(total string) { mv.form.SetTotal(total) }

// SetNotice maps the notice kind onto label importance and the mode indicator.
func (mv *MainView) SetNotice(text string, kind controllers.NoticeKind) {
	importance := widget.MediumImportance
	mode := ""
	switch kind {
	case controllers.NoticeName:
		importance = widget.HighImportance
		mode = "Insert"
	case controllers.NoticeThirdAttempt:
		importance = widget.DangerImportance
		mode = "Insert"
	case controllers.NoticeEditing:
		importance = widget.WarningImportance
		mode = "Update"
	case controllers.NoticeNotFound:
		importance = widget.WarningImportance
	}
	mv.form.SetNotice(text, importance)
	mv.statusBar.SetMode(mode)
}

func (mv *MainView) SetEntriesEnabled(enabled bool) { mv.form.SetEntriesEnabled(enabled) }

func (mv *MainView) SetSubmitEnabled(enabled bool) { mv.form.SetSubmitEnabled(enabled) }

// ResetForm clears the form and puts the cursor back into the ID field.
func (mv *MainView) ResetForm() {
	mv.form.Reset()
	mv.statusBar.Reset()
	mv.form.FocusID(mv.window.Canvas())
}

// RefreshTable redraws the results table from the snapshot.
func (mv *MainView) RefreshTable(table *models.ResultsTable) {
	mv.table.SetData(table)
	mv.statusBar.SetFileInfo(mv.resultsPath, table.Len())
}

func (mv *MainView) SelectRow(row int) { mv.table.Select(row) }

func (mv *MainView) ShowStatus(message string) { mv.statusBar.SetStatus(message) }

// ShowError displays an error dialog
func (mv *MainView) ShowError(title string, err error) {
	dialog.ShowError(fmt.Errorf("%s: %w", title, err), mv.window)
}

// Confirm displays a confirmation dialog
func (mv *MainView) Confirm(title, message string, callback func(bool)) {
	dialog.ShowConfirm(title, message, callback, mv.window)
}

// Alert rings the terminal bell.
func (mv *MainView) Alert() {
	fmt.Fprint(mv.bell, "\a")
}

// SetRosterInfo shows the roster file in the toolbar.
func (mv *MainView) SetRosterInfo(text string) { mv.toolbar.SetRosterInfo(text) }

// SetQuitHandler replaces what the Exit button does.
func (mv *MainView) SetQuitHandler(quit func()) { mv.quit = quit }

// SetFullscreen toggles fullscreen mode
func (mv *MainView) SetFullscreen(fullscreen bool) {
	mv.window.SetFullScreen(fullscreen)
}

// ToggleFullscreen flips between fullscreen and windowed mode
func (mv *MainView) ToggleFullscreen() {
	mv.window.SetFullScreen(!mv.window.FullScreen())
}

// Show displays the view
func (mv *MainView) Show() {
	mv.window.Show()
	mv.form.FocusID(mv.window.Canvas())
}
