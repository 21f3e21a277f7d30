package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/gomeasure/internal/config"
	"github.com/philipparndt/gomeasure/internal/log"
	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/analysis"
	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/stl"
	"github.com/philipparndt/gomeasure/pkg/viewer"
	"github.com/philipparndt/gomeasure/pkg/watcher"
)

type App struct {
	window  fyne.Window
	cfg     config.Config
	view    *viewer.MeasureView
	watcher *watcher.FileWatcher
	logger  *slog.Logger

	ids measurement.SurfaceIDs
	// watched maps an absolute file path to the surfaces loaded from it
	watched map[string][]measurement.SurfaceID

	modeLabel    *widget.Label
	pointsLabel  *widget.Label
	readingLabel *widget.Label
	statusLabel  *widget.Label
	modelLabel   *widget.Label
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv(config.EnvPath))
	if err != nil {
		return err
	}
	log.Init(cfg.LogOptions())
	defer log.Close()

	sessionOpts, err := cfg.SessionOptions()
	if err != nil {
		return err
	}

	faces, err := measurement.NewFaceMeasurer()
	if err != nil {
		return err
	}
	defer faces.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := app.New()
	w := a.NewWindow("gomeasure")

	gui := &App{
		window:  w,
		cfg:     cfg,
		logger:  log.WithComponent("gui"),
		watched: make(map[string][]measurement.SurfaceID),
	}
	gui.view = viewer.NewMeasureView(&viewer.Scene{}, cfg.Style(), faces, sessionOpts...)
	gui.view.SetWireframe(cfg.Viewer.Wireframe)

	if cfg.Viewer.Watch {
		fw, err := watcher.NewFileWatcher(cfg.Viewer.Debounce(), log.WithComponent("watcher"))
		if err != nil {
			gui.logger.Warn("auto-reload not available", "err", err)
		} else {
			fw.Start(ctx)
			defer fw.Close()
			gui.watcher = fw
		}
	}

	gui.setupMainUI()
	if gui.watcher != nil {
		gui.watcher.OnError(func(err error) {
			fyne.Do(func() {
				gui.statusLabel.SetText("Watch error: " + err.Error())
			})
		})
	}
	for _, f := range os.Args[1:] {
		gui.loadFile(f)
	}

	w.Resize(fyne.NewSize(float32(cfg.Viewer.Width), float32(cfg.Viewer.Height)))
	w.ShowAndRun()
	return nil
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func parseMesh(filename string) (*stl.Model, *geometry.Mesh, error) {
	model, err := stl.Parse(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load STL file: %w", err)
	}
	return model, model.Mesh(), nil
}

func (a *App) loadFile(filename string) {
	model, mesh, err := parseMesh(filename)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	id := a.ids.Next(filepath.Base(filename))
	a.view.AddSurface(id, mesh)
	a.showModelInfo(model)

	if a.watcher == nil {
		return
	}
	path, err := filepath.Abs(filename)
	if err != nil {
		a.logger.Warn("cannot watch file", "file", filename, "err", err)
		return
	}
	a.watched[path] = append(a.watched[path], id)
	if len(a.watched[path]) > 1 {
		return
	}
	err = a.watcher.Watch([]string{path}, func(changed string) {
		model, mesh, err := parseMesh(changed)
		fyne.Do(func() {
			if err != nil {
				a.logger.Error("reload failed", "file", changed, "err", err)
				a.statusLabel.SetText("Reload failed: " + err.Error())
				return
			}
			for _, id := range a.watched[path] {
				a.view.Reload(id, mesh)
			}
			a.showModelInfo(model)
			a.statusLabel.SetText("Reloaded " + filepath.Base(changed))
		})
	})
	if err != nil {
		a.logger.Warn("cannot watch file", "file", filename, "err", err)
	}
}

// removeModels drops every loaded surface and stops watching their files
func (a *App) removeModels() {
	a.view.RemoveSurfaces()
	a.ids.Reset()
	clear(a.watched)
	if a.watcher != nil {
		if err := a.watcher.RemoveAll(); err != nil {
			a.logger.Warn("cannot stop watching files", "err", err)
		}
	}
	a.statusLabel.SetText("")
	a.modelLabel.SetText("No model loaded")
}

func (a *App) showModelInfo(model *stl.Model) {
	result := analysis.AnalyzeModel(model)
	a.modelLabel.SetText(fmt.Sprintf(
		"Model: %s\nTriangles: %d\nSurface Area: %.2f ft²\n\nDimensions:\n  X: %.3f\n  Y: %.3f\n  Z: %.3f\n  Diagonal: %.2f ft",
		model.Name,
		result.TriangleCount,
		result.SurfaceAreaSquareFeet(),
		result.Dimensions.X,
		result.Dimensions.Y,
		result.Dimensions.Z,
		result.DiagonalFeet(),
	))
}

func (a *App) setupMainUI() {
	a.modeLabel = widget.NewLabel("")
	a.modeLabel.TextStyle = fyne.TextStyle{Bold: true}
	a.pointsLabel = widget.NewLabel("")
	a.readingLabel = widget.NewLabel("")
	a.readingLabel.TextStyle = fyne.TextStyle{Bold: true}
	a.statusLabel = widget.NewLabel("")
	a.statusLabel.Wrapping = fyne.TextWrapWord
	a.modelLabel = widget.NewLabel("No model loaded")

	titles := make([]string, len(measurement.Modes))
	for i, m := range measurement.Modes {
		titles[i] = m.Title()
	}
	var modeRadio *widget.RadioGroup
	modeRadio = widget.NewRadioGroup(titles, func(title string) {
		if title == "" {
			// tapping the active mode deselects it; select it again to start over
			modeRadio.SetSelected(a.view.Session().Mode().Title())
			return
		}
		if m, err := measurement.ParseMode(title); err == nil {
			a.statusLabel.SetText("")
			a.view.SetMode(m)
		}
	})
	modeRadio.Horizontal = true
	modeRadio.SetSelected(a.view.Session().Mode().Title())

	clearButton := widget.NewButton("Clear", func() {
		a.statusLabel.SetText("")
		a.view.Clear()
	})
	openButton := widget.NewButton("Open File", func() {
		a.showFileDialog()
	})
	removeButton := widget.NewButton("Remove Models", func() {
		a.removeModels()
	})
	resetButton := widget.NewButton("Reset View", func() {
		a.view.ResetCamera()
	})
	wireframeCheck := widget.NewCheck("Wireframe", func(checked bool) {
		a.view.SetWireframe(checked)
	})
	wireframeCheck.SetChecked(a.cfg.Viewer.Wireframe)

	a.view.OnChange(a.updateMeasurements)
	a.view.Session().OnRejected(func(ev measurement.RejectionEvent) {
		if ev.Op == measurement.OpCommit {
			a.statusLabel.SetText("Point rejected: " + ev.Result.Reason.String())
		}
	})

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Click on the surface to place points\n" +
			"• Drag to rotate the view\n" +
			"• Scroll to zoom in/out\n" +
			"• Area points must lie on the first point's plane",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Mode:"),
		modeRadio,
		clearButton,
		widget.NewSeparator(),
		a.modeLabel,
		a.pointsLabel,
		a.readingLabel,
		a.statusLabel,
		widget.NewSeparator(),
		widget.NewLabel("Model Information:"),
		a.modelLabel,
		widget.NewSeparator(),
		wireframeCheck,
		resetButton,
		openButton,
		removeButton,
		widget.NewSeparator(),
		instructions,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	a.window.SetContent(container.NewBorder(nil, nil, nil, infoScroll, a.view))
	a.updateMeasurements(a.view.Session().Snapshot())
}

func (a *App) updateMeasurements(snap measurement.Snapshot) {
	a.modeLabel.SetText(snap.Mode.Title())

	points := fmt.Sprintf("Points: %d", len(snap.Points))
	if c := snap.Mode.Capacity(); c != measurement.Unbounded {
		points = fmt.Sprintf("Points: %d / %d", len(snap.Points), c)
	}
	if snap.Plane != nil {
		n := snap.Plane.Normal
		points += fmt.Sprintf("\nPlane normal: (%.2f, %.2f, %.2f)", n.X, n.Y, n.Z)
	}
	a.pointsLabel.SetText(points)

	live := snap.LiveReading()
	text := fmt.Sprintf("%s: %s", snap.Mode.Title(), live)
	if snap.Preview != nil {
		text += fmt.Sprintf("\nCommitted: %s", snap.Reading())
	}
	a.readingLabel.SetText(text)
}
