package isotrix

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
)

// AssetResolver finds sprite images by name.
type AssetResolver interface {
	ImageForName(name string) (image.Image, error)
	IsImageBacked(name string) bool
}

const axisLineLength = 1000

// Renderer draws scenes with the painter's algorithm. A Renderer is not
// safe for concurrent use.
type Renderer struct {
	cfg      Config
	assets   AssetResolver
	colours  ColourSource
	lights   []LightSource
	ambient  color.RGBA
	logger   *slog.Logger
	missing  map[string]struct{}
	showAxes bool
}

func NewRenderer(cfg Config, assets AssetResolver) *Renderer {
	return &Renderer{
		cfg:     cfg,
		assets:  assets,
		colours: NewNoiseColours(cfg.BaseColour.RGBA(), cfg.ColourDeviation, cfg.ColourSeed),
		lights:  cfg.LightSources(),
		ambient: cfg.Ambient.RGBA(),
		logger:  slog.Default(),
		missing: make(map[string]struct{}),
	}
}

func (r *Renderer) SetLogger(l *slog.Logger) {
	r.logger = l
}

// SetColours sets the colours given to floor trixels made from the boundary.
func (r *Renderer) SetColours(c ColourSource) {
	r.colours = c
}

func (r *Renderer) SetLights(lights []LightSource, ambient color.RGBA) {
	r.lights = lights
	r.ambient = ambient
}

func (r *Renderer) SetShowAxes(show bool) {
	r.showAxes = show
}

func (r *Renderer) size() float64 {
	return float64(r.cfg.TrixelSize)
}

// RenderScene draws the whole scene back to front. Geometry errors stop the
// pass before anything is drawn. Missing images are drawn as placeholders
// and returned together once the pass is complete.
func (r *Renderer) RenderScene(s Surface, scene *Scene, rotate Vector3) error {
	items, err := r.Prepare(scene, rotate)
	if items == nil && err != nil {
		return err
	}
	s.Fill(r.cfg.Background.RGBA())
	for _, item := range items {
		item.Draw(s)
	}
	return err
}

// Prepare transforms, culls, shades and orders everything in the scene.
// The result is in draw order and already flipped into screen space.
func (r *Renderer) Prepare(scene *Scene, rotate Vector3) ([]Renderable, error) {
	centroid, err := scene.Floor.Centroid()
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", scene.Name, err)
	}
	size := r.size()
	transform := MakeTransform(rotate, centroid, r.cfg.View())

	floorTrixels := scene.FloorTrixels
	if len(floorTrixels) == 0 {
		floorTrixels, err = Polygon2DToTrixels(scene.Floor.Polygon(), -size, size, r.colours)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", scene.Name, err)
		}
	}

	toDraw := NewDepthQueue(len(floorTrixels)*3 + len(scene.Drawables))

	// the floor sits one trixel further back so it is behind everything on it
	floorBehind := TransMatrix(0, 0, -size).Compose(transform)
	r.offerTrixels(toDraw, floorTrixels, floorBehind)
	r.offerTrixels(toDraw, scene.Trixels, transform)

	var errs []error
	failed := make(map[string]struct{})
	for _, d := range scene.Drawables {
		img, err := r.resolve(d.ImageName())
		if err != nil {
			if _, seen := failed[d.ImageName()]; !seen {
				failed[d.ImageName()] = struct{}{}
				errs = append(errs, err)
			}
		}
		sprite := Sprite{
			Position: positionIn(d, scene),
			Box:      d.BoundingBox(),
			Image:    img,
			Name:     d.Name(),
		}.Transform(transform).(Sprite)
		toDraw.Offer(sprite)

		if l, ok := d.(Labeller); ok {
			if text, show := l.Label(); show {
				box := sprite.Box
				above := Vector3{X: -box.Width / 2, Y: box.Height - box.Length/2 + 4}
				toDraw.Offer(NewLabel(text, sprite.Position.Translate(above)))
			}
		}
	}

	if r.showAxes {
		for _, line := range AxisLines(axisLineLength) {
			toDraw.Offer(line.Transform(transform))
		}
	}

	toDraw.FlipY(r.cfg.FrameTop())
	return toDraw.Drain(), errors.Join(errs...)
}

// offerTrixels queues the viewer-facing faces of each trixel.
func (r *Renderer) offerTrixels(q *DepthQueue, trixels []Trixel, t Transform) {
	for _, trixel := range trixels {
		for _, face := range MakeTrixelFaces(trixel, r.size()) {
			face = face.Transform(t)
			if face.IsFacingViewer() {
				q.Offer(NewShadedPolygon(face, r.lights, r.ambient))
			}
		}
	}
}

// RenderTrixels draws trixels with a given transform, without clearing the
// surface or adding a floor.
func (r *Renderer) RenderTrixels(s Surface, trixels []Trixel, t Transform) {
	toDraw := NewDepthQueue(len(trixels) * 3)
	r.offerTrixels(toDraw, trixels, t)
	toDraw.FlipY(r.cfg.FrameTop())
	for _, item := range toDraw.Drain() {
		item.Draw(s)
	}
}

// resolve returns nil with no error for drawables that are not image backed.
// Each failing name is logged once for the life of the renderer.
func (r *Renderer) resolve(name string) (image.Image, error) {
	if r.assets == nil || !r.assets.IsImageBacked(name) {
		r.logOnce(name, slog.LevelDebug, "drawable has no image, using placeholder", nil)
		return nil, nil
	}
	img, err := r.assets.ImageForName(name)
	if err == nil {
		return img, nil
	}
	r.logOnce(name, slog.LevelWarn, "could not load image, using placeholder", err)
	if errors.Is(err, ErrUnknownResource) {
		return nil, fmt.Errorf("image %q: %w", name, err)
	}
	return nil, fmt.Errorf("image %q: %w: %w", name, ErrUnknownResource, err)
}

func (r *Renderer) logOnce(name string, level slog.Level, msg string, err error) {
	if _, seen := r.missing[name]; seen {
		return
	}
	r.missing[name] = struct{}{}
	attrs := []any{"image", name}
	if err != nil {
		attrs = append(attrs, "err", err)
	}
	r.logger.Log(context.Background(), level, msg, attrs...)
}
