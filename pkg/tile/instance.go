package tile

import "github.com/gitrdm/beltcompiler/pkg/cnf"

// Instance is one cell's worth of literals, laid out per the schema.
// Every field's literal view is built once, when Instantiate creates the
// instance, from the offsets computed at schema-compile time; Get is then
// a map lookup — no reflection, no per-access type switch over field kind.
type Instance struct {
	schema *Schema
	index  int // index·S + 1 is the base literal for this tile
	values map[string]Literals
}

// Instantiate returns a fresh Instance for tile index, drawing literals
// sequentially from index*Size+1, exactly as util.py's
// TileTemplate.instantiate numbers them. Alias fields reuse already
// allocated literals and allocate nothing new.
func (s *Schema) Instantiate(index int) *Instance {
	base := index*s.Size + 1
	values := make(map[string]Literals, len(s.fields))

	for _, f := range s.fields {
		if f.def.Kind == Alias {
			continue
		}
		dims := f.def.Sizes
		if f.def.Kind == Bool {
			dims = nil
		}
		data := make([]cnf.Literal, f.width)
		for i := 0; i < f.width; i++ {
			data[i] = cnf.Literal(base + f.offset + i)
		}
		values[f.def.Name] = Literals{Dims: dims, Data: data}
	}

	for _, f := range s.fields {
		if f.def.Kind != Alias {
			continue
		}
		var combined []cnf.Literal
		for _, term := range f.def.AliasOf {
			v := values[term.Field]
			if term.Negated {
				v = v.Negate()
			}
			combined = append(combined, v.Data...)
		}
		values[f.def.Name] = Literals{Data: combined}
	}

	return &Instance{schema: s, index: index, values: values}
}

// Get returns the literal view for a field by name. It panics if the name
// is not part of the schema — field access is treated as a programming
// error, not a runtime condition, since every caller works against a
// schema it compiled itself.
func (t *Instance) Get(name string) Literals {
	v, ok := t.values[name]
	if !ok {
		panic("tile: no such field " + name)
	}
	return v
}

// Index returns the row-major cell index this instance was built for.
func (t *Instance) Index() int {
	return t.index
}
