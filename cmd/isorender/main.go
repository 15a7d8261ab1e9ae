// Command isorender renders a scene file to a PNG without opening a window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/smasonuk/isotrix"
	"github.com/smasonuk/isotrix/assets"
	"github.com/smasonuk/isotrix/rastersurface"
	"github.com/smasonuk/isotrix/scenefile"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML config file")
		scenePath  = flag.String("scene", "", "scene file, .toml or .yaml; a demo room when empty")
		assetDir   = flag.String("assets", "", "directory of sprite images")
		out        = flag.String("o", "scene.png", "output PNG")
		rx         = flag.Float64("rx", 0, "rotation about x in radians")
		ry         = flag.Float64("ry", 0, "rotation about y in radians")
		rz         = flag.Float64("rz", 0, "rotation about z in radians")
		axes       = flag.Bool("axes", false, "draw the world axes")
	)
	flag.Parse()

	cfg := isotrix.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = isotrix.LoadConfig(*configPath); err != nil {
			fail(err)
		}
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	scene := demoScene(cfg)
	if *scenePath != "" {
		var err error
		if scene, err = scenefile.Load(*scenePath); err != nil {
			fail(err)
		}
	}

	var resolver isotrix.AssetResolver = assets.NewMemory()
	if *assetDir != "" {
		d, err := assets.NewDir(*assetDir)
		if err != nil {
			fail(err)
		}
		d.NoImage(isotrix.NewProp(isotrix.PropPlayer, "", isotrix.Point3d{}).ImageName())
		resolver = d
	}

	renderer := isotrix.NewRenderer(cfg, resolver)
	renderer.SetLogger(logger)
	renderer.SetShowAxes(*axes)

	surface := rastersurface.New(cfg.FrameWidth, cfg.FrameHeight)
	err := renderer.RenderScene(surface, scene, isotrix.NewVector3(*rx, *ry, *rz))
	if errors.Is(err, isotrix.ErrDegenerateGeometry) {
		fail(err)
	}
	if err != nil {
		logger.Warn("rendered with placeholders", "err", err)
	}
	if err := surface.SavePNG(*out); err != nil {
		fail(err)
	}
	logger.Info("rendered scene", "scene", scene.Name, "out", *out)
}

// demoScene is a small room in the middle of the frame with a pillar, a
// tree and a player standing on the floor.
func demoScene(cfg isotrix.Config) *isotrix.Scene {
	cx, cz := float64(cfg.FrameWidth)/2, float64(cfg.FrameHeight)/2
	size := float64(cfg.TrixelSize)
	floor := isotrix.NewFloor(
		isotrix.NewPoint3d(cx-100, -size, cz-100),
		isotrix.NewPoint3d(cx+100, -size, cz-100),
		isotrix.NewPoint3d(cx+100, -size, cz+100),
		isotrix.NewPoint3d(cx-100, -size, cz+100),
	)
	// the floor layer is one trixel below y = 0
	centre := isotrix.PositionToTrixition(isotrix.NewPoint3d(cx, -size, cz), size)
	onFloor := func(dx, dz int) isotrix.Point3d {
		return isotrix.TopCentre(isotrix.Trixel{Trixition: centre.Add(isotrix.Trixition{X: dx, Z: dz})}, size)
	}
	colour := cfg.BaseColour.RGBA()
	return &isotrix.Scene{
		Name:  "demo",
		Floor: floor,
		Trixels: []isotrix.Trixel{
			isotrix.NewTrixel(centre.Add(isotrix.Trixition{Y: 1}), colour),
			isotrix.NewTrixel(centre.Add(isotrix.Trixition{Y: 2}), colour),
		},
		Drawables: []isotrix.Drawable{
			isotrix.NewProp(isotrix.PropTree, "Tree0", onFloor(4, -3)),
			isotrix.NewProp(isotrix.PropPlayer, "player", onFloor(0, 4)),
		},
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "isorender:", err)
	os.Exit(1)
}
