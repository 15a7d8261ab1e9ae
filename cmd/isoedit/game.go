package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/smasonuk/isotrix"
	"github.com/smasonuk/isotrix/ebitensurface"
	"github.com/smasonuk/isotrix/scenefile"
)

// dragThreshold is how far the mouse may move before a click becomes a drag.
const dragThreshold = 3

const deviationStep = 5

// reloadQuiet ignores file changes this soon after saving.
const reloadQuiet = time.Second

var highlightColour = color.RGBA{R: 255, G: 255, B: 255, A: 255}

var modeKeys = map[ebiten.Key]isotrix.Mode{
	ebiten.Key1: isotrix.ModeTrixel,
	ebiten.Key2: isotrix.ModePlant,
	ebiten.Key3: isotrix.ModeTree,
	ebiten.Key4: isotrix.ModeDoor,
	ebiten.Key5: isotrix.ModeLockedPortal,
	ebiten.Key6: isotrix.ModeAirTank,
	ebiten.Key7: isotrix.ModeChest,
	ebiten.Key8: isotrix.ModeCrystal,
}

type Game struct {
	cfg       isotrix.Config
	editor    *isotrix.Editor
	renderer  *isotrix.Renderer
	surface   *ebitensurface.Surface
	logger    *slog.Logger
	rnd       *rand.Rand
	scenePath string
	reload    <-chan string
	lastSave  time.Time
	showAxes  bool

	pressed          bool
	dragging         bool
	pressX, pressY   int
	lastX, lastY     int
	status           string
	lastRenderErrors error
}

func NewGame(cfg isotrix.Config, editor *isotrix.Editor, renderer *isotrix.Renderer, scenePath string, reload <-chan string, logger *slog.Logger) *Game {
	return &Game{
		cfg:       cfg,
		editor:    editor,
		renderer:  renderer,
		surface:   ebitensurface.New(),
		logger:    logger,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		scenePath: scenePath,
		reload:    reload,
	}
}

func (g *Game) Update() error {
	select {
	case path := <-g.reload:
		if time.Since(g.lastSave) > reloadQuiet {
			g.reloadScene(path)
		}
	default:
	}

	g.handleMouse()
	g.handleKeys()
	return nil
}

func (g *Game) handleMouse() {
	x, y := ebiten.CursorPosition()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pressed = true
		g.dragging = false
		g.pressX, g.pressY = x, y
		g.lastX, g.lastY = x, y
	}
	if g.pressed && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !g.dragging && (abs(x-g.pressX) > dragThreshold || abs(y-g.pressY) > dragThreshold) {
			g.dragging = true
		}
		if g.dragging && (x != g.lastX || y != g.lastY) {
			// horizontal drags turn about y, vertical drags about x
			g.editor.Rotate(y-g.lastY, x-g.lastX)
			g.lastX, g.lastY = x, y
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.pressed {
		g.pressed = false
		if !g.dragging {
			edit, err := g.editor.AddAt(x, y)
			switch {
			case err != nil:
				g.status = err.Error()
			case edit.Changed():
				g.status = ""
			}
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		if edit := g.editor.RemoveAt(x, y); edit.Changed() {
			g.status = ""
		}
	}
}

func (g *Game) handleKeys() {
	for key, mode := range modeKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.editor.SetMode(mode)
		}
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.editor.SetMode(g.editor.Mode().Next())
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.save()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := g.editor.LoadFloor(g.editor.RandomFloor(g.rnd)); err != nil {
			g.status = err.Error()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.editor.RandomiseBaseColour()
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.showAxes = !g.showAxes
		g.renderer.SetShowAxes(g.showAxes)
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.editor.SetColourDeviation(g.editor.ColourDeviation() + deviationStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.editor.SetColourDeviation(g.editor.ColourDeviation() - deviationStep)
	}
}

func (g *Game) save() {
	if g.scenePath == "" {
		g.status = "no scene file given, start with -scene to save"
		return
	}
	scene, err := g.editor.ExportScene()
	if err == nil {
		err = scenefile.Save(g.scenePath, scene)
	}
	if err != nil {
		g.logger.Error("could not save scene", "path", g.scenePath, "err", err)
		g.status = err.Error()
		return
	}
	g.lastSave = time.Now()
	g.logger.Info("saved scene", "path", g.scenePath, "scene", scene.Name)
	g.status = "saved " + g.scenePath
}

func (g *Game) reloadScene(path string) {
	scene, err := scenefile.Load(path)
	if err == nil {
		err = g.editor.LoadScene(scene)
	}
	if err != nil {
		g.logger.Warn("could not reload scene", "path", path, "err", err)
		g.status = err.Error()
		return
	}
	g.logger.Info("reloaded scene", "path", path)
	g.status = "reloaded " + path
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Begin(screen)
	err := g.renderer.RenderScene(g.surface, g.editor.Scene(), g.editor.Rotation())
	if err != nil && (g.lastRenderErrors == nil || err.Error() != g.lastRenderErrors.Error()) {
		g.logger.Debug("render pass had errors", "err", err)
	}
	g.lastRenderErrors = err

	g.drawHighlight()

	ebitenutil.DebugPrint(screen, fmt.Sprintf("mode: %s  deviation: %d  FPS: %0.2f\n%s",
		g.editor.Mode(), g.editor.ColourDeviation(), ebiten.ActualFPS(), g.status))
}

// drawHighlight outlines the face under the cursor.
func (g *Game) drawHighlight() {
	x, y := ebiten.CursorPosition()
	picked, ok := g.editor.PickAt(x, y)
	if !ok {
		return
	}
	face, ok := picked.(isotrix.PickedFace)
	if !ok {
		return
	}
	top := g.cfg.FrameTop()
	xs := make([]float64, len(face.Face.Vertices))
	ys := make([]float64, len(face.Face.Vertices))
	for i, v := range face.Face.Vertices {
		v = v.FlipY(top)
		xs[i], ys[i] = v.X, v.Y
	}
	g.surface.StrokePolygon(xs, ys, 1, highlightColour)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.FrameWidth, g.cfg.FrameHeight
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
