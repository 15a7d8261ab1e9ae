// Command isoedit is an interactive editor for isometric trixel scenes.
//
// Drag with the left mouse button to rotate, click to add, right click to
// remove. Keys 1-8 or Tab pick what is added, S saves, R makes a random
// floor, C picks a new colour, Up and Down change the colour variation and
// A shows the world axes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mitchellh/go-homedir"

	"github.com/smasonuk/isotrix"
	"github.com/smasonuk/isotrix/assets"
	"github.com/smasonuk/isotrix/scenefile"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML config file")
		scenePath  = flag.String("scene", "", "scene file to edit, .toml or .yaml; created on save")
		assetDir   = flag.String("assets", "", "directory of sprite images")
		name       = flag.String("name", "room", "scene name for new scenes")
		watch      = flag.Bool("watch", false, "reload the scene file when it changes on disk")
		logLevel   = flag.String("log", "", "log level, overrides the config")
	)
	flag.Parse()

	if err := run(*configPath, *scenePath, *assetDir, *name, *watch, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "isoedit:", err)
		os.Exit(1)
	}
}

func run(configPath, scenePath, assetDir, name string, watch bool, logLevel string) error {
	cfg := isotrix.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = isotrix.LoadConfig(configPath); err != nil {
			return err
		}
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	resolver, err := newResolver(assetDir)
	if err != nil {
		return err
	}
	renderer := isotrix.NewRenderer(cfg, resolver)
	renderer.SetLogger(logger)

	editor := isotrix.NewEditor(cfg, name, isotrix.NewLinkRegistry())
	editor.SetLogger(logger)

	if scenePath != "" {
		if scenePath, err = homedir.Expand(scenePath); err != nil {
			return err
		}
	}
	if err := loadInitial(editor, scenePath); err != nil {
		return err
	}

	var reload <-chan string
	if watch && scenePath != "" {
		w, err := watchScene(scenePath, logger)
		if err != nil {
			return err
		}
		defer w.Close()
		reload = w.changes
	}

	ebiten.SetWindowSize(cfg.FrameWidth, cfg.FrameHeight)
	ebiten.SetWindowTitle("isoedit: " + editor.Name())
	return ebiten.RunGame(NewGame(cfg, editor, renderer, scenePath, reload, logger))
}

func newResolver(dir string) (isotrix.AssetResolver, error) {
	if dir == "" {
		return assets.NewMemory(), nil
	}
	d, err := assets.NewDir(dir)
	if err != nil {
		return nil, err
	}
	d.NoImage(isotrix.NewProp(isotrix.PropPlayer, "", isotrix.Point3d{}).ImageName())
	names := []string{"teleport_off", "teleporter_on"}
	for _, k := range []isotrix.PropKind{isotrix.PropPlant, isotrix.PropTree, isotrix.PropAirTank, isotrix.PropChest, isotrix.PropCrystal} {
		names = append(names, isotrix.NewProp(k, "", isotrix.Point3d{}).ImageName())
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := d.Preload(ctx, names...); err != nil {
		slog.Warn("some sprites could not be loaded", "dir", dir, "err", err)
	}
	return d, nil
}

// loadInitial opens the scene file when there is one and otherwise starts
// from a random floor.
func loadInitial(editor *isotrix.Editor, scenePath string) error {
	if scenePath != "" {
		scene, err := scenefile.Load(scenePath)
		switch {
		case err == nil:
			return editor.LoadScene(scene)
		case !errors.Is(err, os.ErrNotExist):
			return err
		}
	}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	return editor.LoadFloor(editor.RandomFloor(rnd))
}
