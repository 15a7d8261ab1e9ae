package isotrix

import (
	"fmt"
	"strings"
)

type PropKind int

const (
	PropPlant PropKind = iota
	PropTree
	PropAirTank
	PropChest
	PropCrystal
	PropPlayer
)

type propInfo struct {
	name   string
	image  string
	box    Box3
	isItem bool
}

var propKinds = [...]propInfo{
	PropPlant:   {name: "plant", image: "Plant", box: Box3{Width: 10, Height: 20, Length: 10}},
	PropTree:    {name: "tree", image: "Tree", box: Box3{Width: 30, Height: 60, Length: 30}},
	PropAirTank: {name: "air_tank", image: "AirTank", box: Box3{Width: 10, Height: 20, Length: 10}, isItem: true},
	PropChest:   {name: "chest", image: "Chest", box: Box3{Width: 20, Height: 15, Length: 15}},
	PropCrystal: {name: "crystal", image: "Key", box: Box3{Width: 10, Height: 10, Length: 10}, isItem: true},
	PropPlayer:  {name: "player", image: "Player", box: Box3{Width: 20, Height: 40, Length: 20}},
}

func (k PropKind) info() propInfo {
	if k < 0 || int(k) >= len(propKinds) {
		return propInfo{name: "unknown"}
	}
	return propKinds[k]
}

func (k PropKind) String() string { return k.info().name }

// IsItem reports whether the prop can be carried, e.g. put into a chest.
func (k PropKind) IsItem() bool { return k.info().isItem }

func ParsePropKind(s string) (PropKind, error) {
	for k, info := range propKinds {
		if strings.EqualFold(info.name, s) {
			return PropKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown prop kind %q", s)
}

// Prop is a placed world object: an item, a piece of environment, or a player.
type Prop struct {
	Kind     PropKind
	ID       string
	Pos      Point3d
	Contents []Prop
}

func NewProp(kind PropKind, id string, pos Point3d) *Prop {
	return &Prop{Kind: kind, ID: id, Pos: pos}
}

func (p *Prop) Position() Point3d { return p.Pos }
func (p *Prop) BoundingBox() Box3 { return p.Kind.info().box }
func (p *Prop) ImageName() string { return p.Kind.info().image }
func (p *Prop) Name() string { return p.ID }
func (p *Prop) SetPosition(pt Point3d) { p.Pos = pt }

// Label shows player names above their heads.
func (p *Prop) Label() (string, bool) {
	return p.ID, p.Kind == PropPlayer
}

// AddItem puts an item into a chest.
func (p *Prop) AddItem(item Prop) bool {
	if p.Kind != PropChest || !item.Kind.IsItem() {
		return false
	}
	p.Contents = append(p.Contents, item)
	return true
}
