package ecs

// familyIndex maps a component name to the families that require it, so a
// component change only touches families that can be affected by it.
type familyIndex struct {
	byName map[string][]*Family
}

func newFamilyIndex() *familyIndex {
	return &familyIndex{byName: make(map[string][]*Family, 32)}
}

// register indexes f under each of its distinct required names.
func (x *familyIndex) register(f *Family) {
	for i, name := range f.names {
		if indexOf(f.names[:i], name) >= 0 {
			continue
		}
		x.byName[name] = append(x.byName[name], f)
	}
}

// lookup returns the families requiring name. The slice must not be
// modified by the caller.
func (x *familyIndex) lookup(name string) []*Family {
	return x.byName[name]
}

func (x *familyIndex) names() int {
	return len(x.byName)
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
