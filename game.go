package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/musicstrip/assets"
	"github.com/milk9111/musicstrip/caption"
	"github.com/milk9111/musicstrip/config"
	"github.com/milk9111/musicstrip/ecs/component"
	"github.com/milk9111/musicstrip/engine"
	"github.com/milk9111/musicstrip/overlay"
	"github.com/milk9111/musicstrip/scene"
	"github.com/milk9111/musicstrip/scenes"
	"github.com/milk9111/musicstrip/sequence"
	"github.com/milk9111/musicstrip/tween"
	"go.uber.org/zap"
)

type Game struct {
	cfg     *config.Config
	logger  *zap.Logger
	library *assets.Library
	watcher *scenes.Watcher

	sceneName string
	tweens    *tween.Engine
	graph     *scene.Graph
	captions  *caption.Overlay
	seq       *sequence.Player
	lightbox  *overlay.Lightbox
	endCard   *overlay.EndCard
	engine    *engine.Engine

	scroll float64
}

func runPlayer(ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	s, err := ctx.loadScene()
	if err != nil {
		return err
	}

	library := assets.NewLibrary(cfg.Paths.AssetDir, cfg.Audio.SampleRate, logger.Named("audio"))
	library.Start()
	library.SetMuted(cfg.Audio.Muted)
	if err := library.Preload(context.Background(), sceneTracks(s)); err != nil {
		return err
	}

	g := &Game{cfg: cfg, logger: logger, library: library, sceneName: cfg.Paths.SceneFile}
	if err := g.mount(s); err != nil {
		return err
	}
	defer g.unmount()

	if cfg.Debug.HotReload {
		if w, err := scenes.WatchScene(scenes.DiskDir, g.sceneName, scenes.DefaultDebounce); err != nil {
			logger.Warn("scene hot reload disabled", zap.String("dir", scenes.DiskDir), zap.Error(err))
		} else {
			g.watcher = w
			defer g.watcher.Close()
		}
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

// mount builds the drawable scene and a fresh engine around it. A previous
// engine is torn down only after the new one mounts.
func (g *Game) mount(s *scenes.Scene) error {
	logger := g.logger
	tweens := tween.New()
	graph, err := scene.NewGraph(s.Meshes, tweens, logger.Named("scene"))
	if err != nil {
		return err
	}
	captions, err := caption.New(s.Captions, tweens, logger.Named("caption"))
	if err != nil {
		return err
	}
	seq := sequence.NewPlayer(s.Camera, 0)
	lightbox := overlay.NewLightbox(overlay.NewCatalog(s.Videos), g.overlayEvent,
		overlay.WithLogger(logger.Named("overlay")),
		overlay.WithSize(g.cfg.Window.Width, g.cfg.Window.Height),
	)
	endCard := overlay.NewEndCard(s.Credits, g.home, g.cfg.Window.Width, g.cfg.Window.Height)

	eng, err := engine.New(s, engine.Collaborators{
		Sequence:   seq,
		Scene:      graph,
		Resolver:   graph,
		Captions:   captions,
		Overlay:    lightbox,
		EndCard:    endCard,
		Transports: g.library.Transport,
	}, logger.Named("engine"))
	if err != nil {
		return err
	}

	g.unmount()
	g.tweens, g.graph, g.captions, g.seq = tweens, graph, captions, seq
	g.lightbox, g.endCard, g.engine = lightbox, endCard, eng
	eng.SetScroll(g.scroll)
	return nil
}

// unmount tears the current engine down and frees its players.
func (g *Game) unmount() {
	if g.engine == nil {
		return
	}
	g.engine.Teardown()
	g.library.Release(g.engine.Transports()...)
	g.engine = nil
}

func (g *Game) overlayEvent(kind component.InterruptKind) {
	g.engine.OverlayEvent(kind)
}

func (g *Game) home() {
	g.scroll = 0
	g.engine.SetScroll(0)
}

func (g *Game) Update() error {
	g.pollReload()
	g.handleInput()

	g.engine.Tick()
	g.tweens.Update(time.Second / time.Duration(ebiten.TPS()))
	g.lightbox.Update()
	g.endCard.Update()
	return nil
}

func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.library.ToggleMute()
	}
	if g.lightbox.IsOpen() {
		return
	}

	step := 0.0
	if _, dy := ebiten.Wheel(); dy != 0 {
		step -= dy * g.cfg.Input.ScrollStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyPageDown) {
		step += g.cfg.Input.KeyStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyPageUp) {
		step -= g.cfg.Input.KeyStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		g.home()
	}
	if step != 0 {
		g.scroll = min(max(g.scroll+step, 0), 1)
		g.engine.SetScroll(g.scroll)
	}

	if len(inpututil.AppendJustPressedKeys(nil)) > 0 {
		g.engine.Interact()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.engine.Interact()
		x, y := ebiten.CursorPosition()
		if node, ok := g.graph.PickScreen(g.viewport(), float64(x), float64(y)); ok {
			g.engine.PointerDown(node)
		}
	}
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	select {
	case r, ok := <-g.watcher.Reloads():
		if !ok {
			g.watcher = nil
			return
		}
		if r.Err != nil {
			g.logger.Warn("scene reload failed", zap.String("file", r.File), zap.Error(r.Err))
			return
		}
		if err := g.mount(r.Scene); err != nil {
			g.logger.Warn("scene remount failed", zap.String("file", r.File), zap.Error(err))
			return
		}
		g.logger.Info("scene reloaded", zap.String("file", r.File))
	default:
	}
}

func (g *Game) viewport() scene.Viewport {
	return scene.Viewport{
		Camera: g.seq.Camera(),
		Width:  float64(g.cfg.Window.Width),
		Height: float64(g.cfg.Window.Height),
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.graph.Draw(screen, g.viewport())
	g.captions.Draw(screen)
	g.endCard.Draw(screen)
	g.lightbox.Draw(screen)

	if g.cfg.Debug.Overlay {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("pos %.2f/%.0f  scroll %.3f  muted %s  FPS %.1f",
			g.engine.Position(), g.engine.Length(), g.scroll, yesNo(g.library.Muted()), ebiten.ActualFPS()))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}
