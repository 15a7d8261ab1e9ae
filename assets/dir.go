// Package assets resolves sprite image names to images.
package assets

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/h2non/filetype"
	"github.com/mitchellh/go-homedir"
	"golang.org/x/sync/errgroup"

	// bmp sprites
	_ "golang.org/x/image/bmp"

	"github.com/smasonuk/isotrix"
)

// Extensions are tried in order when looking up an image name.
var Extensions = []string{".png", ".jpg", ".jpeg", ".bmp"}

// sniffLen is enough header for filetype to recognise every image format.
const sniffLen = 261

const preloadWorkers = 4

// Dir loads images named by file name without extension from a directory.
// Decoded images are cached. Dir is safe for concurrent use.
type Dir struct {
	root     string
	mu       sync.Mutex
	cache    map[string]image.Image
	unbacked map[string]bool
}

func NewDir(root string) (*Dir, error) {
	root, err := homedir.Expand(root)
	if err != nil {
		return nil, fmt.Errorf("could not expand asset dir %s: %w", root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("asset dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset dir %s is not a directory", root)
	}
	return &Dir{
		root:     root,
		cache:    make(map[string]image.Image),
		unbacked: make(map[string]bool),
	}, nil
}

// NoImage marks names that are always drawn as placeholders.
func (d *Dir) NoImage(names ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, n := range names {
		d.unbacked[n] = true
	}
}

func (d *Dir) IsImageBacked(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.unbacked[name]
}

func (d *Dir) find(name string) (string, bool) {
	for _, ext := range Extensions {
		path := filepath.Join(d.root, name+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func (d *Dir) ImageForName(name string) (image.Image, error) {
	d.mu.Lock()
	img, ok := d.cache[name]
	d.mu.Unlock()
	if ok {
		return img, nil
	}

	path, ok := d.find(name)
	if !ok {
		return nil, fmt.Errorf("no file for %q in %s: %w", name, d.root, isotrix.ErrUnknownResource)
	}
	img, err := load(path)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.cache[name] = img
	d.mu.Unlock()
	return img, nil
}

// load checks the file header before decoding so that a stray non-image
// file is reported as such rather than as a decode failure.
func load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	f.Close()
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	if !filetype.IsImage(head[:n]) {
		return nil, fmt.Errorf("%s is not an image: %w", path, isotrix.ErrUnknownResource)
	}
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	return img, nil
}

// Preload decodes the named images concurrently. It stops at the first
// failure.
func (d *Dir) Preload(ctx context.Context, names ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadWorkers)
	for _, name := range names {
		if !d.IsImageBacked(name) {
			continue
		}
		name := name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := d.ImageForName(name)
			return err
		})
	}
	return g.Wait()
}
