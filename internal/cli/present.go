package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/echocat/slf4g"
	"github.com/spf13/cobra"

	"github.com/ayusman/airdeck/internal/app"
	"github.com/ayusman/airdeck/internal/capture"
	"github.com/ayusman/airdeck/internal/config"
	"github.com/ayusman/airdeck/internal/detector"
	"github.com/ayusman/airdeck/internal/gesture"
	"github.com/ayusman/airdeck/internal/plugin"
	"github.com/ayusman/airdeck/internal/presentation"
	"github.com/ayusman/airdeck/internal/render"
	"github.com/ayusman/airdeck/internal/server"
	"github.com/ayusman/airdeck/internal/slides"
	"github.com/ayusman/airdeck/internal/store"
	"github.com/ayusman/airdeck/internal/tray"
)

type presentFlags struct {
	camera     int
	listen     string
	handedness string
	tray       bool
	headless   bool
	drawHand   bool
}

func NewPresentCmd(deps *Dependencies) *cobra.Command {
	var flags presentFlags

	cmd := &cobra.Command{
		Use:   "present [slides-dir]",
		Short: "Start presenting a slide directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := deps.Config
			if len(args) == 1 {
				cfg.SlidesDir = args[0]
			}
			fs := cmd.Flags()
			if fs.Changed("camera") {
				cfg.CameraID = flags.camera
			}
			if fs.Changed("listen") {
				cfg.Listen = flags.listen
			}
			if fs.Changed("handedness") {
				cfg.Handedness = flags.handedness
			}
			if fs.Changed("tray") {
				cfg.Tray = flags.tray
			}
			if flags.headless {
				window := false
				cfg.Window = &window
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return present(ctx, cfg, flags.drawHand)
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&flags.camera, "camera", 0, "webcam device id")
	fs.StringVar(&flags.listen, "listen", "", "serve the HTTP API on this address, e.g. :8080")
	fs.StringVar(&flags.handedness, "handedness", "right", "presenting hand: right or left")
	fs.BoolVar(&flags.tray, "tray", false, "show a system tray menu")
	fs.BoolVar(&flags.headless, "headless", false, "do not open the output window")
	fs.BoolVar(&flags.drawHand, "draw-hand", false, "draw the detected hand on the webcam thumbnail")

	return cmd
}

// present wires every component from cfg and runs until the window is
// closed, Quit is picked from the tray or ctx is cancelled.
func present(ctx context.Context, cfg *config.Config, drawHand bool) error {
	hand, err := gesture.ParseHandedness(cfg.Handedness)
	if err != nil {
		return err
	}

	deck, err := slides.Open(cfg.SlidesDir, cfg.Width, cfg.Height)
	if err != nil {
		return fmt.Errorf("opening slides: %w", err)
	}
	defer deck.Close()

	st, err := store.New(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	detectorConfig := detector.DefaultConfig()
	detectorConfig.MinConfidence = cfg.MinConfidence
	det, err := detector.NewMediaPipeDetector(detectorConfig, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("starting hand detector: %w", err)
	}
	defer det.Close()

	manager := plugin.NewManager(cfg.PluginDir)
	if err := manager.Discover(); err != nil {
		log.With("dir", cfg.PluginDir).WithError(err).Warn("Failed to discover plugins.")
	}
	hooks := plugin.NewHooks(manager, plugin.NewExecutor(plugin.DefaultTimeout))
	defer hooks.Close()

	renderer := render.NewRenderer()
	renderer.Color = render.BGR(uint8(cfg.DrawColor[0]), uint8(cfg.DrawColor[1]), uint8(cfg.DrawColor[2]))
	renderer.Thickness = cfg.DrawThickness
	renderer.PointerRadius = cfg.PointerRadius

	var display render.Display = render.Headless{}
	if cfg.WindowEnabled() {
		display = render.NewWindow(render.WindowTitle)
	}
	defer display.Close()

	a, err := app.New(app.Config{
		Camera: capture.NewCamera(capture.Config{
			DeviceID: cfg.CameraID,
			Width:    cfg.Width,
			Height:   cfg.Height,
			FPS:      capture.DefaultFPS,
			Mirror:   cfg.MirrorEnabled(),
		}),
		Detector:   det,
		Slides:     deck,
		Renderer:   renderer,
		Display:    display,
		Store:      st,
		Hooks:      hooks,
		SlidesDir:  cfg.SlidesDir,
		Handedness: hand,
		Presentation: presentation.Config{
			HoldFrames:     cfg.HoldFrames,
			CooldownFrames: cfg.CooldownFrames,
		},
		MotionThreshold: cfg.MotionThreshold,
		EncodeFrames:    cfg.Listen != "",
		DrawHand:        drawHand,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.Listen != "" {
		srv := server.New(server.Config{Source: a, Store: st})
		go func() {
			log.With("addr", cfg.Listen).Info("Serving HTTP API.")
			if err := srv.Run(ctx, cfg.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("HTTP server failed.")
			}
		}()
	}

	if !cfg.Tray {
		return a.Run(ctx)
	}

	t := tray.New(a)
	t.OnQuit(cancel)
	if cfg.Listen != "" {
		url := browserURL(cfg.Listen)
		t.OnOpen(func() {
			if err := openBrowser(url); err != nil {
				log.With("url", url).WithError(err).Warn("Failed to open browser.")
			}
		})
	}

	// The output window owns the main thread when there is one; otherwise
	// the tray does.
	if cfg.WindowEnabled() {
		go t.Run(ctx)
		return a.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		defer cancel()
		errCh <- a.Run(ctx)
	}()
	t.Run(ctx)
	cancel()
	return <-errCh
}
