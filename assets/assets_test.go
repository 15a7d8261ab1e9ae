package assets

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smasonuk/isotrix"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, Solid(w, h, color.RGBA{G: 200, A: 255})))
}

func testDir(t *testing.T) *Dir {
	t.Helper()
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "Tree.png"), 3, 6)
	writePNG(t, filepath.Join(root, "Chest.png"), 4, 3)
	require.NoError(t, os.WriteFile(filepath.Join(root, "Plant.png"), []byte("not really a picture"), 0o644))
	d, err := NewDir(root)
	require.NoError(t, err)
	return d
}

func TestDirImageForName(t *testing.T) {
	d := testDir(t)

	img, err := d.ImageForName("Tree")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 6), img.Bounds())

	again, err := d.ImageForName("Tree")
	require.NoError(t, err)
	assert.Same(t, img, again)

	_, err = d.ImageForName("Dragon")
	assert.ErrorIs(t, err, isotrix.ErrUnknownResource)

	_, err = d.ImageForName("Plant")
	assert.ErrorIs(t, err, isotrix.ErrUnknownResource)
}

func TestDirNoImage(t *testing.T) {
	d := testDir(t)
	assert.True(t, d.IsImageBacked("Player"))
	d.NoImage("Player")
	assert.False(t, d.IsImageBacked("Player"))
	assert.True(t, d.IsImageBacked("Tree"))
}

func TestDirPreload(t *testing.T) {
	d := testDir(t)
	require.NoError(t, d.Preload(context.Background(), "Tree", "Chest"))
	assert.Len(t, d.cache, 2)

	err := d.Preload(context.Background(), "Tree", "Plant")
	assert.ErrorIs(t, err, isotrix.ErrUnknownResource)

	d.NoImage("Plant")
	assert.NoError(t, d.Preload(context.Background(), "Plant"))
}

func TestNewDirErrors(t *testing.T) {
	_, err := NewDir(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = NewDir(file)
	assert.Error(t, err)
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	tree := Solid(2, 2, color.White)
	m.Add("Tree", tree)
	m.Expect("Chest")

	assert.True(t, m.IsImageBacked("Tree"))
	assert.True(t, m.IsImageBacked("Chest"))
	assert.False(t, m.IsImageBacked("Player"))

	img, err := m.ImageForName("Tree")
	require.NoError(t, err)
	assert.Same(t, tree, img)

	_, err = m.ImageForName("Chest")
	assert.ErrorIs(t, err, isotrix.ErrUnknownResource)
}

func TestMemoryServesRenderer(t *testing.T) {
	m := NewMemory()
	m.Expect("Tree")
	r := isotrix.NewRenderer(isotrix.DefaultConfig(), m)
	scene := &isotrix.Scene{
		Name: "room",
		Floor: isotrix.NewFloor(
			isotrix.NewPoint3d(0, -10, 0),
			isotrix.NewPoint3d(10, -10, 0),
			isotrix.NewPoint3d(10, -10, 10),
			isotrix.NewPoint3d(0, -10, 10),
		),
		Drawables: []isotrix.Drawable{isotrix.NewProp(isotrix.PropTree, "Tree0", isotrix.NewPoint3d(5, 0, 5))},
	}
	_, err := r.Prepare(scene, isotrix.Vector3{})
	assert.ErrorIs(t, err, isotrix.ErrUnknownResource)

	m.Add("Tree", Solid(3, 6, color.Black))
	_, err = r.Prepare(scene, isotrix.Vector3{})
	assert.NoError(t, err)
}
