// Package game wires the engine pieces into the two demo loops: the
// first-person session and the orbit viewer.
package game

import (
	"github.com/soldane/ballistic/phys"
	"github.com/soldane/ballistic/scene"
)

// Entry couples one physics body with its mesh proxy. The two share a
// lifetime: removing either side removes both in the same frame.
type Entry struct {
	Body phys.Handle
	Mesh *scene.Mesh
}

// Registry is the insertion-ordered set of live body/mesh pairs.
type Registry struct {
	entries []Entry
}

// Add registers a pair.
func (r *Registry) Add(body phys.Handle, mesh *scene.Mesh) {
	r.entries = append(r.entries, Entry{Body: body, Mesh: mesh})
}

// Len returns the number of live pairs.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Sync copies each body's transform onto its mesh. Pairs whose body
// fell strictly below cullY are removed from the world, the scene,
// and the registry. The scan compacts kept entries in place so
// removal during iteration cannot skip a neighbor.
func (r *Registry) Sync(world *phys.World, s *scene.Scene, cullY float64) {
	writeIdx := 0
	for _, e := range r.entries {
		pos, orient, ok := world.ReadTransform(e.Body)
		if !ok || pos.Y() < cullY {
			if ok {
				world.RemoveBody(e.Body)
			}
			s.Remove(e.Mesh)
			continue
		}
		e.Mesh.SetTransform(pos, orient)
		r.entries[writeIdx] = e
		writeIdx++
	}
	r.entries = r.entries[:writeIdx]
}
