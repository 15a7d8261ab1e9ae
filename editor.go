package isotrix

import (
	"cmp"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/jinzhu/copier"
)

// Mode selects what the editor places on a click.
type Mode int

const (
	ModeTrixel Mode = iota
	ModePlant
	ModeTree
	ModeDoor
	ModeLockedPortal
	ModeAirTank
	ModeChest
	ModeCrystal
)

var modeNames = [...]string{"Trixel", "Plant", "Tree", "Door", "LockedPortal", "AirTank", "Chest", "Crystal"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "Unknown"
	}
	return modeNames[m]
}

// Next cycles through the modes.
func (m Mode) Next() Mode {
	return (m + 1) % Mode(len(modeNames))
}

func ParseMode(s string) (Mode, error) {
	s = strings.ReplaceAll(s, "_", "")
	for i, name := range modeNames {
		if strings.EqualFold(name, s) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown editor mode %q", s)
}

func (m Mode) propKind() (PropKind, bool) {
	switch m {
	case ModePlant:
		return PropPlant, true
	case ModeTree:
		return PropTree, true
	case ModeAirTank:
		return PropAirTank, true
	case ModeChest:
		return PropChest, true
	case ModeCrystal:
		return PropCrystal, true
	}
	return 0, false
}

// EditOp says what an editing call changed.
type EditOp int

const (
	EditNone EditOp = iota
	EditAddTrixel
	EditAddDrawable
	EditAddToChest
	EditRemoveTrixel
	EditRemoveDrawable
)

// Edit is the result of AddAt or RemoveAt.
type Edit struct {
	Op       EditOp
	Trixel   Trixel
	Drawable Drawable

	// Chest is the chest an item was put into.
	Chest *Prop
}

func (e Edit) Changed() bool {
	return e.Op != EditNone
}

const (
	randomFloorMinPoints = 4
	randomFloorMaxPoints = 10
	randomFloorWidth     = 1000
	randomFloorDepth     = 800
)

// Editor builds one scene interactively. It keeps the transformed faces and
// drawables of the scene in a PickList that is rebuilt after every rotation
// or edit, so the list always matches the last applied transform.
//
// An Editor is not safe for concurrent use. Editors sharing a LinkRegistry
// must be driven from the same goroutine.
type Editor struct {
	cfg        Config
	name       string
	floor      Floor
	floorSet   *TrixelSet
	createdSet *TrixelSet
	drawables  []Drawable
	registry   *LinkRegistry
	camera     *IsoCamera
	picks      *PickList
	mode       Mode
	colours    *RandomColours
	trixelSize float64
	nextID     int
	logger     *slog.Logger
}

func NewEditor(cfg Config, name string, registry *LinkRegistry) *Editor {
	if registry == nil {
		registry = NewLinkRegistry()
	}
	e := &Editor{
		cfg:        cfg,
		name:       name,
		floorSet:   NewTrixelSet(),
		createdSet: NewTrixelSet(),
		registry:   registry,
		camera:     NewIsoCamera(Point3d{}, cfg.View(), cfg.RotateSpeed),
		picks:      NewPickList(),
		colours:    NewRandomColours(cfg.BaseColour.RGBA(), cfg.ColourDeviation, cfg.ColourSeed),
		trixelSize: float64(cfg.TrixelSize),
		logger:     slog.Default(),
	}
	e.rebuild()
	return e
}

func (e *Editor) SetLogger(l *slog.Logger) {
	e.logger = l
}

// LoadFloor clears the editor and starts a new level from a floor. The floor
// is moved so its centroid sits in the middle of the frame and is laid out as
// trixels one trixel below y = 0.
func (e *Editor) LoadFloor(floor Floor) error {
	centroid, err := floor.Centroid()
	if err != nil {
		return fmt.Errorf("load floor: %w", err)
	}
	ideal := Point3d{X: float64(e.cfg.FrameWidth) / 2, Y: centroid.Y, Z: float64(e.cfg.FrameHeight) / 2}
	floor = floor.Translate(ideal.DistanceTo(centroid))

	trixels, err := Polygon2DToTrixels(floor.Polygon(), -e.trixelSize, e.trixelSize, e.colours)
	if err != nil {
		return fmt.Errorf("load floor: %w", err)
	}

	e.clear()
	e.floor = floor
	for _, t := range trixels {
		e.floorSet.Add(t)
	}
	e.camera.SetPivot(ideal)
	e.rebuild()
	e.logger.Debug("loaded floor", "scene", e.name, "vertices", len(floor.Points), "trixels", len(trixels))
	return nil
}

// LoadScene replaces the editor contents with a saved scene. Portals are
// adopted by the registry and relinked with their saved counterparts.
func (e *Editor) LoadScene(scene *Scene) error {
	centroid, err := scene.Floor.Centroid()
	if err != nil {
		return fmt.Errorf("load scene %s: %w", scene.Name, err)
	}
	floorTrixels := scene.FloorTrixels
	if len(floorTrixels) == 0 {
		floorTrixels, err = Polygon2DToTrixels(scene.Floor.Polygon(), -e.trixelSize, e.trixelSize, e.colours)
		if err != nil {
			return fmt.Errorf("load scene %s: %w", scene.Name, err)
		}
	}

	e.clear()
	e.name = scene.Name
	e.floor = NewFloor(scene.Floor.Points...)
	for _, t := range floorTrixels {
		e.floorSet.Add(t)
	}
	for _, t := range scene.Trixels {
		e.createdSet.Add(t)
	}
	for _, d := range scene.Drawables {
		switch d := d.(type) {
		case *Portal:
			d.Scene = e.name
			e.registry.Adopt(d)
		case *Prop:
			e.reserveIDs(*d)
		}
		e.drawables = append(e.drawables, d)
	}
	e.camera.SetPivot(centroid)
	e.rebuild()
	return nil
}

// clear drops everything in the level, including this scene's portals.
func (e *Editor) clear() {
	e.floorSet.Clear()
	e.createdSet.Clear()
	e.drawables = nil
	e.registry.RemoveScene(e.name)
	e.camera.SetRotation(Vector3{})
}

// rebuild remakes the pick list from the current transform.
func (e *Editor) rebuild() {
	t := e.camera.Transform()
	e.picks.Reset()
	e.addFaces(e.floorSet, t, true)
	e.addFaces(e.createdSet, t, false)
	scene := &Scene{Name: e.name, Floor: e.floor, Drawables: e.drawables}
	for _, d := range e.drawables {
		e.picks.Add(NewPickedDrawable(d, positionIn(d, scene), t))
	}
	e.picks.Sort()
}

func (e *Editor) addFaces(set *TrixelSet, t Transform, floor bool) {
	for _, trixel := range set.Sorted() {
		for _, face := range MakeTrixelFaces(trixel, e.trixelSize) {
			face = face.Transform(t)
			if face.IsFacingViewer() {
				e.picks.Add(PickedFace{Face: face, Floor: floor})
			}
		}
	}
}

// Rotate turns the view about the x and y axes by a number of input steps,
// usually pixels dragged, scaled by the rotate speed.
func (e *Editor) Rotate(aboutX, aboutY int) {
	e.camera.AddAngle(float64(aboutX), float64(aboutY), 0)
	e.rebuild()
}

// viewPoint converts screen coordinates into view space.
func (e *Editor) viewPoint(x, y int) (float64, float64) {
	return float64(x), e.cfg.FrameTop() - float64(y)
}

// PickAt returns the nearest face or drawable under a screen position.
func (e *Editor) PickAt(x, y int) (Pickable, bool) {
	return e.picks.Pick(e.viewPoint(x, y))
}

// AddAt places something at a screen position according to the mode. New
// trixels go next to the clicked face; props and portals stand on top of
// the clicked trixel; items clicked onto a chest go into the chest.
func (e *Editor) AddAt(x, y int) (Edit, error) {
	vx, vy := e.viewPoint(x, y)
	face, ok := e.picks.PickFace(vx, vy)
	if !ok {
		return Edit{}, nil
	}
	clicked, _ := e.picks.Pick(vx, vy)
	parent := face.Face.Parent
	top := TopCentre(parent, e.trixelSize)

	var edit Edit
	switch e.mode {
	case ModeTrixel:
		pos := parent.Trixition.Add(face.Face.Side.Outward())
		if e.floorSet.Has(pos) || e.createdSet.Has(pos) {
			return Edit{}, nil
		}
		t := NewTrixel(pos, e.colours.Colour(pos))
		e.createdSet.Add(t)
		edit = Edit{Op: EditAddTrixel, Trixel: t}

	case ModeDoor, ModeLockedPortal:
		p, err := e.registry.Place(e.name, top, e.mode == ModeLockedPortal)
		if err != nil {
			return Edit{}, err
		}
		e.drawables = append(e.drawables, p)
		if p.Link != nil {
			e.logger.Info("linked portals", "from", p.Link.Ref(), "to", p.Ref())
		} else {
			e.logger.Debug("placed pending portal", "portal", p.Ref(), "at", top)
		}
		edit = Edit{Op: EditAddDrawable, Drawable: p}

	default:
		kind, _ := e.mode.propKind()
		prop := NewProp(kind, e.newPropID(kind), top)
		if d, ok := clicked.(PickedDrawable); ok {
			chest, isProp := d.Drawable.(*Prop)
			if !isProp || !chest.AddItem(*prop) {
				return Edit{}, nil
			}
			e.logger.Debug("added item to chest", "item", prop.ID, "chest", chest.ID)
			edit = Edit{Op: EditAddToChest, Drawable: prop, Chest: chest}
			break
		}
		e.drawables = append(e.drawables, prop)
		edit = Edit{Op: EditAddDrawable, Drawable: prop}
	}

	e.logger.Debug("edit", "scene", e.name, "mode", e.mode, "x", x, "y", y)
	e.rebuild()
	return edit, nil
}

func (e *Editor) newPropID(kind PropKind) string {
	id := fmt.Sprintf("%s%d", kind.info().image, e.nextID)
	e.nextID++
	return id
}

// reserveIDs moves the id counter past the numbers used by a loaded prop
// and everything inside it.
func (e *Editor) reserveIDs(p Prop) {
	digits := strings.TrimRightFunc(p.ID, unicode.IsDigit)
	if n, err := strconv.Atoi(p.ID[len(digits):]); err == nil && n >= e.nextID {
		e.nextID = n + 1
	}
	for _, c := range p.Contents {
		e.reserveIDs(c)
	}
}

// RemoveAt deletes the nearest created trixel or drawable under a screen
// position. Floor trixels cannot be removed. Removing a portal clears the
// link held by its counterpart.
func (e *Editor) RemoveAt(x, y int) Edit {
	picked, ok := e.PickAt(x, y)
	if !ok {
		return Edit{}
	}

	var edit Edit
	switch p := picked.(type) {
	case PickedFace:
		t := p.Face.Parent
		if p.Floor || !e.createdSet.Remove(t.Trixition) {
			return Edit{}
		}
		edit = Edit{Op: EditRemoveTrixel, Trixel: t}
	case PickedDrawable:
		if portal, ok := p.Drawable.(*Portal); ok {
			e.registry.Remove(portal)
		}
		e.drawables = slices.DeleteFunc(e.drawables, func(d Drawable) bool { return d == p.Drawable })
		edit = Edit{Op: EditRemoveDrawable, Drawable: p.Drawable}
	}

	e.logger.Debug("removed", "scene", e.name, "x", x, "y", y)
	e.rebuild()
	return edit
}

// WorldPointAt finds the world position on the nearest face under a screen
// position.
func (e *Editor) WorldPointAt(x, y int) (Point3d, bool) {
	vx, vy := e.viewPoint(x, y)
	face, ok := e.picks.PickFace(vx, vy)
	if !ok {
		return Point3d{}, false
	}
	z, ok := NewPlane(face.Face).ZAt(vx, vy)
	if !ok {
		return Point3d{}, false
	}
	return e.camera.ReverseTransform().Apply(Point3d{X: vx, Y: vy, Z: z}), true
}

// Scene is a live view of the level for rendering. It shares drawables with
// the editor.
func (e *Editor) Scene() *Scene {
	return &Scene{
		Name:         e.name,
		Floor:        e.floor,
		FloorTrixels: e.floorSet.Sorted(),
		Trixels:      e.createdSet.Sorted(),
		Drawables:    slices.Clone(e.drawables),
	}
}

// ExportScene copies the level for saving. Nothing in the result is shared
// with the editor; portals keep only the name of their counterpart.
func (e *Editor) ExportScene() (*Scene, error) {
	scene := e.Scene()
	scene.Floor = NewFloor(e.floor.Points...)
	for i, d := range scene.Drawables {
		switch d := d.(type) {
		case *Prop:
			var cp Prop
			if err := copier.CopyWithOption(&cp, d, copier.Option{DeepCopy: true}); err != nil {
				return nil, fmt.Errorf("export %s: copy %s: %w", e.name, d.ID, err)
			}
			dropEmptyContents(&cp)
			scene.Drawables[i] = &cp
		case *Portal:
			cp := *d
			cp.Link = nil
			scene.Drawables[i] = &cp
		}
	}
	return scene, nil
}

// dropEmptyContents restores nil contents that copying turned into empty
// slices, so a copy compares equal to its original.
func dropEmptyContents(p *Prop) {
	if len(p.Contents) == 0 {
		p.Contents = nil
		return
	}
	for i := range p.Contents {
		dropEmptyContents(&p.Contents[i])
	}
}

// RandomFloor makes a floor of 4 to 9 random points, ordered around their
// centroid so the outline does not cross itself.
func (e *Editor) RandomFloor(rnd *rand.Rand) Floor {
	n := randomFloorMinPoints + rnd.Intn(randomFloorMaxPoints-randomFloorMinPoints)
	points := make([]Point3d, n)
	var cx, cz float64
	for i := range points {
		points[i] = Point3d{
			X: float64(rnd.Intn(randomFloorWidth)),
			Y: -e.trixelSize,
			Z: float64(rnd.Intn(randomFloorDepth)),
		}
		cx += points[i].X
		cz += points[i].Z
	}
	cx, cz = cx/float64(n), cz/float64(n)
	slices.SortFunc(points, func(a, b Point3d) int {
		return cmp.Compare(math.Atan2(a.Z-cz, a.X-cx), math.Atan2(b.Z-cz, b.X-cx))
	})
	return NewFloor(points...)
}

func (e *Editor) Name() string { return e.name }

// SetName renames the scene. Portals in the scene follow, and their
// counterparts are told the new name.
func (e *Editor) SetName(name string) {
	for _, p := range e.registry.Portals() {
		if p.Scene != e.name {
			continue
		}
		p.Scene = name
		if p.Link != nil {
			p.Link.LinkRef = p.Ref()
		}
	}
	e.name = name
}

func (e *Editor) Mode() Mode { return e.mode }
func (e *Editor) SetMode(m Mode) { e.mode = m }
func (e *Editor) Floor() Floor { return e.floor }
func (e *Editor) Camera() *IsoCamera { return e.camera }
func (e *Editor) Picks() *PickList { return e.picks }

func (e *Editor) Registry() *LinkRegistry { return e.registry }

func (e *Editor) Rotation() Vector3 { return e.camera.Rotation() }

// Transform is the transform the pick list was last built with.
func (e *Editor) Transform() Transform { return e.camera.Transform() }

func (e *Editor) FloorTrixels() []Trixel { return e.floorSet.Sorted() }
func (e *Editor) CreatedTrixels() []Trixel { return e.createdSet.Sorted() }
func (e *Editor) Drawables() []Drawable { return slices.Clone(e.drawables) }

func (e *Editor) TrixelSize() float64 { return e.trixelSize }

// SetTrixelSize changes the size used for trixels made from now on.
func (e *Editor) SetTrixelSize(size float64) {
	if size <= 0 {
		return
	}
	e.trixelSize = size
	e.rebuild()
}

func (e *Editor) BaseColour() color.RGBA { return e.colours.Base }

func (e *Editor) SetBaseColour(c color.RGBA) {
	e.colours.Base = c
}

// RandomiseBaseColour picks a new base colour at random.
func (e *Editor) RandomiseBaseColour() {
	e.colours.Base = e.colours.RandomBaseColour()
}

func (e *Editor) ColourDeviation() int { return e.colours.Deviation }

// SetColourDeviation sets how far new trixel colours may stray from the
// base colour, clamped to [MinColourDeviation, MaxColourDeviation].
func (e *Editor) SetColourDeviation(d int) {
	e.colours.Deviation = clamp(d, MinColourDeviation, MaxColourDeviation)
}
