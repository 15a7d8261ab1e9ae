// Package scenefile saves and loads editor scenes as TOML or YAML.
package scenefile

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/smasonuk/isotrix"
)

// Version is written into every saved scene.
const Version = "1.0.0"

// versions is the range of file versions this package can read.
const versions = "^1"

var (
	ErrUnsupportedVersion = errors.New("unsupported scene file version")
	ErrUnknownFormat      = errors.New("unknown scene file format")
)

type Format int

const (
	TOML Format = iota
	YAML
)

func (f Format) String() string {
	switch f {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	}
	return "unknown"
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return 0, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

type document struct {
	Version      string       `toml:"version" yaml:"version"`
	Name         string       `toml:"name" yaml:"name"`
	Floor        [][3]float64 `toml:"floor" yaml:"floor"`
	FloorTrixels []trixelDoc  `toml:"floor_trixels,omitempty" yaml:"floor_trixels,omitempty"`
	Trixels      []trixelDoc  `toml:"trixels,omitempty" yaml:"trixels,omitempty"`
	Props        []propDoc    `toml:"props,omitempty" yaml:"props,omitempty"`
	Portals      []portalDoc  `toml:"portals,omitempty" yaml:"portals,omitempty"`
}

type trixelDoc struct {
	Pos    [3]int `toml:"pos" yaml:"pos,flow"`
	Colour string `toml:"colour" yaml:"colour"`
}

type propDoc struct {
	Kind     string     `toml:"kind" yaml:"kind"`
	ID       string     `toml:"id" yaml:"id"`
	Pos      [3]float64 `toml:"pos" yaml:"pos,flow"`
	Contents []propDoc  `toml:"contents,omitempty" yaml:"contents,omitempty"`
}

type portalDoc struct {
	ID     string     `toml:"id" yaml:"id"`
	Pos    [3]float64 `toml:"pos" yaml:"pos,flow"`
	Locked bool       `toml:"locked" yaml:"locked"`
	Link   string     `toml:"link,omitempty" yaml:"link,omitempty"`
}

// Save writes a scene to path in the format named by its extension.
func Save(path string, scene *isotrix.Scene) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("could not expand scene path %s: %w", path, err)
	}
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, format, scene); err != nil {
		return fmt.Errorf("could not encode scene %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("could not write scene %s: %w", path, err)
	}
	return nil
}

// Load reads a scene saved by Save.
func Load(path string) (*isotrix.Scene, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("could not expand scene path %s: %w", path, err)
	}
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open scene %s: %w", path, err)
	}
	defer f.Close()
	scene, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("error reading scene %s: %w", path, err)
	}
	return scene, nil
}

func Encode(w io.Writer, format Format, scene *isotrix.Scene) error {
	doc, err := toDocument(scene)
	if err != nil {
		return err
	}
	switch format {
	case TOML:
		return toml.NewEncoder(w).Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return ErrUnknownFormat
}

func Decode(r io.Reader, format Format) (*isotrix.Scene, error) {
	var doc document
	switch format {
	case TOML:
		if err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, err
		}
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnknownFormat
	}
	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

func checkVersion(v string) error {
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%q: %w", v, ErrUnsupportedVersion)
	}
	c, err := semver.NewConstraint(versions)
	if err != nil {
		return err
	}
	if !c.Check(version) {
		return fmt.Errorf("%s does not satisfy %s: %w", version, versions, ErrUnsupportedVersion)
	}
	return nil
}

func toDocument(scene *isotrix.Scene) (document, error) {
	doc := document{
		Version:      Version,
		Name:         scene.Name,
		Floor:        make([][3]float64, len(scene.Floor.Points)),
		FloorTrixels: trixelDocs(scene.FloorTrixels),
		Trixels:      trixelDocs(scene.Trixels),
	}
	for i, p := range scene.Floor.Points {
		doc.Floor[i] = [3]float64{p.X, p.Y, p.Z}
	}
	for _, d := range scene.Drawables {
		switch d := d.(type) {
		case *isotrix.Prop:
			doc.Props = append(doc.Props, toPropDoc(*d))
		case *isotrix.Portal:
			doc.Portals = append(doc.Portals, portalDoc{
				ID:     d.ID,
				Pos:    [3]float64{d.Pos.X, d.Pos.Y, d.Pos.Z},
				Locked: d.Locked,
				Link:   d.LinkRef,
			})
		default:
			return doc, fmt.Errorf("cannot save drawable %s of type %T", d.Name(), d)
		}
	}
	return doc, nil
}

func trixelDocs(trixels []isotrix.Trixel) []trixelDoc {
	if len(trixels) == 0 {
		return nil
	}
	out := make([]trixelDoc, len(trixels))
	for i, t := range trixels {
		out[i] = trixelDoc{
			Pos:    [3]int{t.Trixition.X, t.Trixition.Y, t.Trixition.Z},
			Colour: hexColour(t.Colour),
		}
	}
	return out
}

func toPropDoc(p isotrix.Prop) propDoc {
	doc := propDoc{
		Kind: p.Kind.String(),
		ID:   p.ID,
		Pos:  [3]float64{p.Pos.X, p.Pos.Y, p.Pos.Z},
	}
	for _, c := range p.Contents {
		doc.Contents = append(doc.Contents, toPropDoc(c))
	}
	return doc
}

func fromDocument(doc document) (*isotrix.Scene, error) {
	scene := &isotrix.Scene{Name: doc.Name}
	points := make([]isotrix.Point3d, len(doc.Floor))
	for i, p := range doc.Floor {
		points[i] = isotrix.NewPoint3d(p[0], p[1], p[2])
	}
	scene.Floor = isotrix.NewFloor(points...)

	var err error
	if scene.FloorTrixels, err = fromTrixelDocs(doc.FloorTrixels); err != nil {
		return nil, err
	}
	if scene.Trixels, err = fromTrixelDocs(doc.Trixels); err != nil {
		return nil, err
	}
	for _, pd := range doc.Props {
		p, err := fromPropDoc(pd)
		if err != nil {
			return nil, err
		}
		scene.Drawables = append(scene.Drawables, p)
	}
	for _, pd := range doc.Portals {
		scene.Drawables = append(scene.Drawables, &isotrix.Portal{
			ID:      pd.ID,
			Pos:     isotrix.NewPoint3d(pd.Pos[0], pd.Pos[1], pd.Pos[2]),
			Locked:  pd.Locked,
			Scene:   doc.Name,
			LinkRef: pd.Link,
		})
	}
	return scene, nil
}

func fromTrixelDocs(docs []trixelDoc) ([]isotrix.Trixel, error) {
	var out []isotrix.Trixel
	for _, d := range docs {
		c, err := parseHexColour(d.Colour)
		if err != nil {
			return nil, err
		}
		pos := isotrix.Trixition{X: d.Pos[0], Y: d.Pos[1], Z: d.Pos[2]}
		out = append(out, isotrix.NewTrixel(pos, c))
	}
	return out, nil
}

func fromPropDoc(doc propDoc) (*isotrix.Prop, error) {
	kind, err := isotrix.ParsePropKind(doc.Kind)
	if err != nil {
		return nil, err
	}
	p := isotrix.NewProp(kind, doc.ID, isotrix.NewPoint3d(doc.Pos[0], doc.Pos[1], doc.Pos[2]))
	for _, cd := range doc.Contents {
		c, err := fromPropDoc(cd)
		if err != nil {
			return nil, err
		}
		p.Contents = append(p.Contents, *c)
	}
	return p, nil
}

func hexColour(c color.RGBA) string {
	col, _ := colorful.MakeColor(c)
	return col.Hex()
}

func parseHexColour(s string) (color.RGBA, error) {
	if len(s) != 7 {
		return color.RGBA{}, fmt.Errorf("bad colour %q, want #rrggbb", s)
	}
	col, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad colour %q: %w", s, err)
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
