package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"exam-points/internal/config"
	"exam-points/internal/controllers"
	"exam-points/internal/logger"
	"exam-points/internal/models"
	"exam-points/internal/report"
	"exam-points/internal/services"
	"exam-points/internal/shutdown"
	"exam-points/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
)

const (
	AppName    = "Exam Points"
	AppID      = "com.exampoints.exam-points"
	AppVersion = "1.0.0"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := config.Default()
	var noSound, windowed bool

	cmd := &cobra.Command{
		Use:   "exam-points <roster.csv> <exercises>",
		Short: "Record exam points per student into a results CSV",
		Long: `exam-points opens a form for entering exam points. Students are looked up by
registration number in the results file first, then in the roster. Submitted
rows are written to the results file, which is created on first use.`,
		Version:      AppVersion,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadEnv(cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.InputFile = args[0]
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("number of exercises %q: %w", args[1], err)
			}
			cfg.Exercises = n
			cfg.SoundEnabled = !noSound
			cfg.Fullscreen = !windowed

			if err := cfg.Finalize(); err != nil {
				return err
			}
			return runGUI(cfg)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&cfg.Delimiter, "delimiter", "d", config.DefaultDelimiter, "field delimiter of both CSV files")
	pf.StringVarP(&cfg.OutputFile, "output", "o", config.DefaultOutputFile, "results file")

	f := cmd.Flags()
	f.BoolVar(&noSound, "no-sound", false, "do not ring the bell for third-attempt students")
	f.StringVar(&cfg.ColumnsFile, "columns", "", "YAML file mapping roster column names (env: "+config.EnvColumnsFile+")")
	f.StringVar(&cfg.ThirdAttemptValue, "third-attempt", config.DefaultThirdAttemptValue, "roster attempt value marking a third attempt")
	f.BoolVar(&windowed, "windowed", false, "start in a window instead of fullscreen")

	cmd.AddCommand(newTableCommand(cfg))
	return cmd
}

func newTableCommand(cfg *config.Config) *cobra.Command {
	var opts report.Options

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the results file as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.CheckDelimiter(); err != nil {
				return err
			}
			if opts.Exercises < 1 {
				return fmt.Errorf("number of exercises (%d) must be at least 1", opts.Exercises)
			}
			opts.Path = cfg.OutputFile
			opts.Comma = cfg.Comma()
			return report.Render(cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.Exercises, "exercises", "n", 0, "number of exercise columns")
	f.StringVar(&opts.SortColumn, "sort", "", "sort by this column (e.g. Total)")
	f.BoolVar(&opts.Descending, "desc", false, "sort descending")
	_ = cmd.MarkFlagRequired("exercises")

	return cmd
}

// runGUI opens the files, builds the window and blocks until it is closed.
func runGUI(cfg *config.Config) error {
	log := logger.New(logger.ParseLevel(cfg.Logging.Level), cfg.Logging.Format)

	log.Info("Application", "starting", map[string]interface{}{
		"version":    AppVersion,
		"go_version": runtime.Version(),
		"log_level":  cfg.Logging.Level,
	})

	service, err := services.NewGradingService(cfg, log)
	if err != nil {
		log.Error("Application", err, nil)
		if errors.Is(err, models.ErrFormatMismatch) {
			return fmt.Errorf("%w\nfix or delete %s and start again", err, cfg.OutputFile)
		}
		return err
	}

	fyneApp := app.NewWithID(AppID)
	fyneApp.SetMetadata(&fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()

	view := views.NewMainView(window, cfg.Exercises, cfg.OutputFile)
	view.SetRosterInfo("Roster: " + filepath.Base(service.RosterPath()))

	controller := controllers.NewFormController(service, log, cfg.SoundEnabled)
	controller.SetView(view)
	if err := controller.Start(); err != nil {
		return err
	}

	manager := shutdown.NewManager(log)
	manager.Register(shutdown.Func(func() {
		fyne.Do(fyneApp.Quit)
	}))
	manager.Listen()

	confirmExit := func() {
		log.Info("Application", "window close requested", nil)
		view.Confirm("Exit", "Are you sure you want to exit?", func(confirmed bool) {
			if confirmed {
				manager.Shutdown()
			}
		})
	}
	window.SetCloseIntercept(confirmExit)
	view.SetQuitHandler(confirmExit)

	view.SetFullscreen(cfg.Fullscreen)
	view.Show()
	fyneApp.Run()

	log.Info("Application", "terminated", nil)
	return nil
}
