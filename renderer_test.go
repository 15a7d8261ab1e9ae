package isotrix

import (
	"bytes"
	"image"
	"image/color"
	"log/slog"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(assets AssetResolver) (*Renderer, *bytes.Buffer) {
	var logs bytes.Buffer
	r := NewRenderer(DefaultConfig(), assets)
	r.SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return r, &logs
}

func TestPrepareCullsBackFaces(t *testing.T) {
	r, _ := newTestRenderer(nil)
	scene := &Scene{Name: "one", Floor: squareFloor(10)}

	items, err := r.Prepare(scene, Vector3{})
	require.NoError(t, err)
	// one floor trixel shows its left, top and front faces
	assert.Len(t, items, 3)
	for _, it := range items {
		assert.IsType(t, ShadedPolygon{}, it)
	}
}

func TestPrepareDecomposesFloor(t *testing.T) {
	r, _ := newTestRenderer(nil)
	items, err := r.Prepare(&Scene{Name: "room", Floor: squareFloor(50)}, Vector3{})
	require.NoError(t, err)
	// 25 floor trixels with three faces each
	assert.Len(t, items, 75)
}

func TestRenderSceneDrawsBackToFront(t *testing.T) {
	r, _ := newTestRenderer(nil)
	red := color.RGBA{R: 200, A: 255}
	scene := &Scene{
		Name:    "room",
		Floor:   squareFloor(10),
		Trixels: []Trixel{NewTrixel(Trixition{}, red)},
	}

	items, err := r.Prepare(scene, Vector3{X: 0.2, Y: -0.4})
	require.NoError(t, err)
	for i := 1; i < len(items); i++ {
		assert.LessOrEqual(t, items[i-1].Depth(), items[i].Depth())
	}

	s := &recordingSurface{}
	require.NoError(t, r.RenderScene(s, scene, Vector3{}))
	require.Len(t, s.calls, 7)
	assert.Equal(t, "fill", s.calls[0].op)
	assert.Equal(t, DefaultConfig().Background.RGBA(), s.calls[0].colour)

	// the trixel standing on the floor is drawn after every floor face
	for i, c := range s.calls[1:] {
		require.Equal(t, "polygon", c.op)
		onFloor := i < 3
		assert.Equal(t, onFloor, c.colour.B != 20, "call %d colour %v", i+1, c.colour)
	}
}

func TestRenderSceneEmptyFloorFails(t *testing.T) {
	r, _ := newTestRenderer(nil)
	s := &recordingSurface{}
	err := r.RenderScene(s, &Scene{Name: "empty"}, Vector3{})
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
	assert.Empty(t, s.calls)
}

func TestRenderSceneMissingImage(t *testing.T) {
	assets := memoryAssets{missing: map[string]bool{"Tree": true}}
	r, logs := newTestRenderer(assets)
	scene := &Scene{
		Name:  "room",
		Floor: squareFloor(50),
		Drawables: []Drawable{
			NewProp(PropTree, "Tree0", Point3d{X: 15, Y: 0, Z: 15}),
			NewProp(PropTree, "Tree1", Point3d{X: 35, Y: 0, Z: 35}),
		},
	}

	for i := 0; i < 2; i++ {
		s := &recordingSurface{}
		err := r.RenderScene(s, scene, Vector3{})
		require.ErrorIs(t, err, ErrUnknownResource)
		assert.Equal(t, 1, strings.Count(err.Error(), `"Tree"`), "one error per missing name")

		// everything else is still drawn, trees as placeholders
		assert.Equal(t, 75+2, s.count("polygon"))
		assert.Zero(t, s.count("image"))
		placeholders := 0
		for _, c := range s.calls {
			if c.op == "polygon" && c.colour == placeholderColour {
				placeholders++
			}
		}
		assert.Equal(t, 2, placeholders)
		assert.Equal(t, 4, s.count("line"))
	}
	assert.Equal(t, 1, strings.Count(logs.String(), "could not load image"))
}

func TestRenderSceneDrawsImages(t *testing.T) {
	tree := image.NewRGBA(image.Rect(0, 0, 3, 6))
	r, logs := newTestRenderer(memoryAssets{images: map[string]image.Image{"Tree": tree}})
	scene := &Scene{
		Name:      "room",
		Floor:     squareFloor(50),
		Drawables: []Drawable{NewProp(PropTree, "Tree0", Point3d{X: 25, Y: 0, Z: 25})},
	}

	s := &recordingSurface{}
	require.NoError(t, r.RenderScene(s, scene, Vector3{}))
	require.Equal(t, 1, s.count("image"))
	for _, c := range s.calls {
		if c.op != "image" {
			continue
		}
		assert.Same(t, tree, c.img)
		assert.Equal(t, 30.0, c.xs[1]-c.xs[0])
		assert.Equal(t, 60.0, c.ys[1]-c.ys[0])
	}
	assert.Empty(t, logs.String())
}

func TestRenderScenePlayerLabel(t *testing.T) {
	r, _ := newTestRenderer(nil)
	scene := &Scene{
		Name:      "room",
		Floor:     squareFloor(50),
		Drawables: []Drawable{NewProp(PropPlayer, "bob", Point3d{X: 25, Y: 0, Z: 25})},
	}

	s := &recordingSurface{}
	require.NoError(t, r.RenderScene(s, scene, Vector3{}))
	require.Equal(t, 1, s.count("text"))
	i := slices.IndexFunc(s.calls, func(c surfaceCall) bool { return c.op == "text" })
	label := s.calls[i]
	assert.Equal(t, "bob", label.text)
	assert.Equal(t, labelColour, label.colour)

	// the label follows the player's placeholder and sits above it
	require.GreaterOrEqual(t, i, 3)
	placeholder := s.calls[i-3]
	assert.Equal(t, placeholderColour, placeholder.colour)
	assert.Equal(t, "line", s.calls[i-1].op)
	assert.Less(t, label.ys[0], placeholder.ys[0])
}

func TestRenderSceneAxes(t *testing.T) {
	r, _ := newTestRenderer(nil)
	r.SetShowAxes(true)
	s := &recordingSurface{}
	require.NoError(t, r.RenderScene(s, &Scene{Name: "room", Floor: squareFloor(10)}, Vector3{}))
	assert.Equal(t, 3, s.count("line"))
}

type placedMarker struct {
	Prop
	offset Vector3
}

func (m *placedMarker) PositionIn(scene *Scene) Point3d {
	c, _ := scene.Floor.Centroid()
	return c.Translate(m.offset)
}

func TestRenderScenePlacedDrawable(t *testing.T) {
	tree := image.NewRGBA(image.Rect(0, 0, 1, 1))
	r, _ := newTestRenderer(memoryAssets{images: map[string]image.Image{"Tree": tree}})
	marker := &placedMarker{Prop: *NewProp(PropTree, "m", Point3d{X: 1000, Y: 1000, Z: 1000})}
	scene := &Scene{Name: "room", Floor: squareFloor(10), Drawables: []Drawable{marker}}

	items, err := r.Prepare(scene, Vector3{})
	require.NoError(t, err)
	var sprite Sprite
	for _, it := range items {
		if sp, ok := it.(Sprite); ok {
			sprite = sp
		}
	}
	// the floor centroid is the pivot so it lands where MakeTransform sends it
	centroid := Point3d{X: 5, Y: -10, Z: 5}
	want := MakeTransform(Vector3{}, centroid, DefaultConfig().View()).Apply(centroid).FlipY(DefaultConfig().FrameTop())
	assertPointNear(t, want, sprite.Position)
}

func TestRenderTrixels(t *testing.T) {
	r, _ := newTestRenderer(nil)
	trixels := []Trixel{
		NewTrixel(Trixition{}, color.RGBA{R: 200, A: 255}),
		NewTrixel(Trixition{X: 3}, color.RGBA{G: 200, A: 255}),
	}
	centroid, err := TrixelsCentroid(trixels, 10)
	require.NoError(t, err)

	s := &recordingSurface{}
	r.RenderTrixels(s, trixels, MakeTransform(Vector3{}, centroid, DefaultConfig().View()))
	assert.Equal(t, 6, s.count("polygon"))
	assert.Zero(t, s.count("fill"), "the surface is not cleared")
}

func TestPrepareDropsEdgeOnFaces(t *testing.T) {
	r, _ := newTestRenderer(nil)
	scene := &Scene{Name: "one", Floor: squareFloor(10)}

	// turning back the isometric y rotation leaves a pure x tilt, so the
	// left and right faces project to lines
	rotate := Vector3{Y: -math.Pi / 4}
	items, err := r.Prepare(scene, rotate)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		poly := it.(ShadedPolygon)
		outline := make(Polygon2, len(poly.Points))
		for i, p := range poly.Points {
			outline[i] = Vector2{X: p.X, Y: p.Y}
		}
		assert.Greater(t, math.Abs(outline.SignedArea()), 1.0)
	}

	centroid, err := scene.Floor.Centroid()
	require.NoError(t, err)
	transform := MakeTransform(rotate, centroid, DefaultConfig().View())
	faces := MakeTrixelFaces(Trixel{Trixition: Trixition{Y: -1}}, 10)
	facing := map[FaceSide]bool{}
	for _, f := range faces {
		facing[f.Side] = f.Transform(transform).IsFacingViewer()
	}
	assert.False(t, facing[FaceLeft])
	assert.False(t, facing[FaceRight])
	assert.True(t, facing[FaceTop])
	assert.True(t, facing[FaceFront])
}
