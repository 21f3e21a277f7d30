package app

import (
	"context"
	"errors"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/philipparndt/gomeasure/internal/config"
	"github.com/philipparndt/gomeasure/internal/log"
	"github.com/philipparndt/gomeasure/internal/measurement"
)

// Options configures Run
type Options struct {
	Files  []string
	Config config.Config
}

// glyphs covers ASCII plus the characters used in readings
var glyphs = []rune(" !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~°²—")

// Run opens the viewer window and blocks until it is closed
func Run(ctx context.Context, opts Options) error {
	if len(opts.Files) == 0 {
		return errors.New("no model files given")
	}
	logger := log.WithComponent("app")

	sessionOpts, err := opts.Config.SessionOptions()
	if err != nil {
		return err
	}

	surfaces, err := loadSurfaces(opts.Files)
	if err != nil {
		return err
	}

	app := &App{
		Scene: SceneData{surfaces: surfaces},
		View: ViewSettings{
			showWireframe: opts.Config.Viewer.Wireframe,
			showFilled:    true,
		},
		cfg:    opts.Config,
		logger: logger,
	}
	app.session = measurement.NewSession(app, sessionOpts...)
	app.session.OnRejected(func(ev measurement.RejectionEvent) {
		if ev.Op != measurement.OpCommit {
			return
		}
		app.Interaction.lastReject = ev
		app.Interaction.rejectUntil = time.Now().Add(2 * time.Second)
	})
	app.updateSceneBounds()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if opts.Config.Viewer.Watch {
		if err := app.setupFileWatcher(ctx); err != nil {
			logger.Warn("auto-reload not available", "err", err)
		} else {
			defer app.FileWatch.fileWatcher.Close()
		}
	}

	// Must be before InitWindow
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Config.Viewer.Width), int32(opts.Config.Viewer.Height), "gomeasure")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(opts.Config.Viewer.FPS))
	// Esc clears the measurement, only the window button closes
	rl.SetExitKey(0)

	// Loaded large for crisp rendering when scaled down on high DPI displays
	app.UI.font = rl.LoadFontFromMemory(".ttf", goregular.TTF, 64, glyphs)
	rl.SetTextureFilter(app.UI.font.Texture, rl.FilterBilinear)
	defer rl.UnloadFont(app.UI.font)
	app.setupStyle()

	app.overlay = measurement.NewOverlay(opts.Config.Style(), fontMeasurer{font: app.UI.font})

	app.uploadSurfaces()
	defer app.unloadSurfaces()
	app.Scene.material = rl.LoadMaterialDefault()

	app.frameScene()
	logger.Info("viewer started",
		"surfaces", len(surfaces),
		"mode", app.session.Mode().String(),
		"size", app.Scene.size)

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			break
		}

		app.applyReloads()

		app.handleInput()
		app.updateCamera()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(app.Camera.camera)
		app.drawScene()
		rl.EndMode3D()

		width, height := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
		cmds := app.overlay.Render(
			app.session.Snapshot(),
			app.projector(width, height),
			measurement.Viewport{Width: float64(width), Height: float64(height)},
		)
		app.drawCommands(cmds)

		app.drawUI()
		rl.EndDrawing()
	}

	logger.Info("viewer closed")
	return nil
}
