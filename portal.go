package isotrix

import (
	"fmt"
	"slices"
)

var portalBox = Box3{Width: 20, Height: 30, Length: 20}

// Portal is an editor marker joining two scenes. A portal is pending until
// a second portal with the same locked state is placed.
type Portal struct {
	ID     string
	Pos    Point3d
	Locked bool
	Scene  string
	Link   *Portal

	// LinkRef names the counterpart as "scene/id" so links survive saving.
	LinkRef string
}

func (p *Portal) Position() Point3d { return p.Pos }
func (p *Portal) BoundingBox() Box3 { return portalBox }
func (p *Portal) Name() string { return p.ID }

func (p *Portal) ImageName() string {
	if p.Locked {
		return "teleport_off"
	}
	return "teleporter_on"
}

// Ref is how other portals refer to this one.
func (p *Portal) Ref() string {
	return p.Scene + "/" + p.ID
}

func (p *Portal) link(other *Portal) {
	p.Link, p.LinkRef = other, other.Ref()
	other.Link, other.LinkRef = p, p.Ref()
}

// LinkRegistry owns every portal of an editing session and the pending end
// of a link under construction. It is shared by all editors taking part.
type LinkRegistry struct {
	portals []*Portal
	pending *Portal
	nextID  int
}

func NewLinkRegistry() *LinkRegistry {
	return &LinkRegistry{}
}

// Place puts down a portal end in a scene. The first placement becomes the
// pending end; the next placement with the same locked state completes the
// link and both ends refer to each other.
func (r *LinkRegistry) Place(scene string, pos Point3d, locked bool) (*Portal, error) {
	if r.pending != nil && r.pending.Locked != locked {
		return nil, fmt.Errorf("place portal in %s: %w", scene, ErrLinkLockMismatch)
	}

	prefix := "Portal"
	if locked {
		prefix = "LockedPortal"
	}
	p := &Portal{
		ID:     r.newID(scene, prefix),
		Pos:    pos,
		Locked: locked,
		Scene:  scene,
	}
	r.portals = append(r.portals, p)

	if r.pending == nil {
		r.pending = p
		return p, nil
	}
	r.pending.link(p)
	r.pending = nil
	return p, nil
}

func (r *LinkRegistry) newID(scene, prefix string) string {
	for {
		id := fmt.Sprintf("%s%d", prefix, r.nextID)
		r.nextID++
		taken := slices.ContainsFunc(r.portals, func(q *Portal) bool {
			return q.Scene == scene && q.ID == id
		})
		if !taken {
			return id
		}
	}
}

// Pending is the unlinked end waiting for a partner, or nil.
func (r *LinkRegistry) Pending() *Portal {
	return r.pending
}

func (r *LinkRegistry) Portals() []*Portal {
	return slices.Clone(r.portals)
}

// Remove drops a portal and clears its counterpart's link.
func (r *LinkRegistry) Remove(p *Portal) {
	if p == nil {
		return
	}
	r.portals = slices.DeleteFunc(r.portals, func(q *Portal) bool { return q == p })
	if r.pending == p {
		r.pending = nil
	}
	if p.Link != nil {
		p.Link.Link, p.Link.LinkRef = nil, ""
		p.Link, p.LinkRef = nil, ""
	}
}

// RemoveScene drops every portal belonging to a scene.
func (r *LinkRegistry) RemoveScene(scene string) {
	for _, p := range r.Portals() {
		if p.Scene == scene {
			r.Remove(p)
		}
	}
}

// Adopt registers a portal loaded from a saved scene. It is linked with an
// unlinked portal of the same lock state when either names the other and
// neither names someone else. This also relinks a scene reloaded while its
// counterpart stayed open, whose reference was cleared by the reload. A
// saved portal without a reference becomes the pending end if there is none.
func (r *LinkRegistry) Adopt(p *Portal) {
	if slices.Contains(r.portals, p) {
		return
	}
	r.portals = append(r.portals, p)
	for _, q := range r.portals {
		if q != p && q.Link == nil && q.Locked == p.Locked && refersTo(p, q) {
			if r.pending == q {
				r.pending = nil
			}
			q.link(p)
			return
		}
	}
	if p.LinkRef == "" && r.pending == nil {
		r.pending = p
	}
}

// refersTo reports whether a and b may be joined: at least one names the
// other, and neither names a third portal.
func refersTo(a, b *Portal) bool {
	aToB, bToA := a.LinkRef == b.Ref(), b.LinkRef == a.Ref()
	return (aToB || bToA) && (aToB || a.LinkRef == "") && (bToA || b.LinkRef == "")
}
