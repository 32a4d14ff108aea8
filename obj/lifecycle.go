package obj

// Object is a spawned thing whose lifetime the ObjectManager owns.
type Object interface {
	Drawable
	Update(dt float64)
	Destroyed() bool
}

type untracker interface {
	Untrack(b Body)
}

// ObjectManager owns spawned objects after they leave their spawner.
type ObjectManager struct {
	objects   []Object
	collision untracker
}

// NewObjectManager creates a manager. collision may be nil; when set, purged
// objects are also removed from it.
func NewObjectManager(collision untracker) *ObjectManager {
	return &ObjectManager{collision: collision}
}

func (m *ObjectManager) Add(o Object) {
	if o == nil {
		return
	}
	m.objects = append(m.objects, o)
}

// Objects returns the live objects. The slice must not be modified.
func (m *ObjectManager) Objects() []Object { return m.objects }

func (m *ObjectManager) Len() int { return len(m.objects) }

// Update advances every live object.
func (m *ObjectManager) Update(dt float64) {
	for _, o := range m.objects {
		if !o.Destroyed() {
			o.Update(dt)
		}
	}
}

// PurgeDestroyed drops every destroyed object from the manager, the render
// target and the collision world.
func (m *ObjectManager) PurgeDestroyed(rt RenderTarget) {
	live := m.objects[:0]
	for _, o := range m.objects {
		if !o.Destroyed() {
			live = append(live, o)
			continue
		}
		if rt != nil {
			rt.RemoveChild(o)
		}
		if m.collision != nil {
			m.collision.Untrack(o)
		}
	}
	for i := len(live); i < len(m.objects); i++ {
		m.objects[i] = nil
	}
	m.objects = live
}
