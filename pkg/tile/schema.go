// Package tile implements a declarative per-cell field schema: an ordered
// mapping from field name to field kind (bool / arr / num / signed_num /
// one_hot / alias), compiled once into a dense literal layout, then used
// to both instantiate fresh literals for a cell and to parse a satisfying
// assignment back into structured values.
//
// The schema is compiled — not reflected over — at NewSchema time: build
// accessors at schema-compile time rather than inspect values at each use.
// Compare pkg/minikanren/domain.go, which similarly compiles a structural
// description (bitset width) once at construction rather than inspecting
// values at each use.
package tile

import (
	"errors"
	"fmt"
)

// FieldKind identifies the shape of a template field.
type FieldKind int

const (
	// Bool is a single literal.
	Bool FieldKind = iota
	// Arr is a k-dimensional array of literals with no further decoding.
	Arr
	// Num is an n-bit little-endian unsigned integer.
	Num
	// SignedNum is an n-bit two's-complement integer.
	SignedNum
	// OneHot is n literals with exactly-one-true semantics (decoding is
	// unconstrained by the template itself; an upstream AMO/EO encoder is
	// responsible for actually preventing multiple-true).
	OneHot
	// Alias is a derived view concatenating (and optionally negating)
	// previously declared fields. It allocates no new literals.
	Alias
)

func (k FieldKind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Arr:
		return "arr"
	case Num:
		return "num"
	case SignedNum:
		return "signed_num"
	case OneHot:
		return "one_hot"
	case Alias:
		return "alias"
	default:
		return "unknown"
	}
}

// AliasTerm names one field contributed to an Alias, optionally negated
// element-wise.
type AliasTerm struct {
	Field   string
	Negated bool
}

// FieldDef is one entry of a schema, as supplied to NewSchema. Sizes is
// used by Arr/Num/SignedNum/OneHot (ignored otherwise); AliasOf is used
// only by Alias fields.
type FieldDef struct {
	Name    string
	Kind    FieldKind
	Sizes   []int
	AliasOf []AliasTerm
}

// field is the compiled, validated form of a FieldDef: its layout (offset
// and dimensions) within one tile's literal block is fixed once here.
type field struct {
	def    FieldDef
	offset int // offset within the tile block, meaningless for Alias
	width  int // total literals occupied, 0 for Alias
}

// Schema is a compiled, ordered field list. Size is the number of literals
// allocated per cell.
type Schema struct {
	fields    []field
	byName    map[string]int
	Size      int
}

// Errors for usage-time (schema construction) failures: template
// validation failures.
var (
	ErrUnknownFieldKind       = errors.New("tile: unknown field kind")
	ErrDuplicateField         = errors.New("tile: duplicate field name")
	ErrAliasUndefined         = errors.New("tile: alias references an undefined field")
	ErrAliasForwardReference  = errors.New("tile: alias references a field declared later")
	ErrAliasMultiDimensional  = errors.New("tile: cannot compose a multi-dimensional field into an alias")
	ErrIncompatibleMerge      = errors.New("tile: incompatible field kinds for merge")
	ErrNegativeSize           = errors.New("tile: field size must be non-negative")
)

// NewSchema compiles an ordered list of field definitions into a Schema.
// Alias fields may only reference fields declared earlier in defs,
// mirroring util.py's TileTemplate, which raises on forward or undefined
// alias references.
func NewSchema(defs []FieldDef) (*Schema, error) {
	s := &Schema{byName: make(map[string]int, len(defs))}

	acc := 0
	for _, def := range defs {
		if _, exists := s.byName[def.Name]; exists {
			return nil, fmt.Errorf("tile: field %q: %w", def.Name, ErrDuplicateField)
		}

		f := field{def: def}
		switch def.Kind {
		case Bool:
			f.offset = acc
			f.width = 1
			acc++
		case Arr, Num, SignedNum, OneHot:
			total := 1
			for _, sz := range def.Sizes {
				if sz < 0 {
					return nil, fmt.Errorf("tile: field %q: %w", def.Name, ErrNegativeSize)
				}
				total *= sz
			}
			f.offset = acc
			f.width = total
			acc += total
		case Alias:
			for _, term := range def.AliasOf {
				idx, ok := s.byName[term.Field]
				if !ok {
					// Could be undefined, or simply not yet reached.
					found := false
					for _, d := range defs {
						if d.Name == term.Field {
							found = true
							break
						}
					}
					if !found {
						return nil, fmt.Errorf("tile: alias %q -> %q: %w", def.Name, term.Field, ErrAliasUndefined)
					}
					return nil, fmt.Errorf("tile: alias %q -> %q: %w", def.Name, term.Field, ErrAliasForwardReference)
				}
				ref := s.fields[idx]
				if ref.def.Kind != Alias && len(ref.def.Sizes) > 1 {
					return nil, fmt.Errorf("tile: alias %q -> %q: %w", def.Name, term.Field, ErrAliasMultiDimensional)
				}
			}
			// Alias allocates no new literals.
		default:
			return nil, fmt.Errorf("tile: field %q has kind %d: %w", def.Name, def.Kind, ErrUnknownFieldKind)
		}

		s.byName[def.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}

	s.Size = acc
	return s, nil
}

// FieldNames returns the schema's field names in declaration order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.def.Name
	}
	return names
}

// Kind returns the kind of a field, or an error if it does not exist.
func (s *Schema) Kind(name string) (FieldKind, error) {
	idx, ok := s.byName[name]
	if !ok {
		return 0, fmt.Errorf("tile: no such field %q", name)
	}
	return s.fields[idx].def.Kind, nil
}

// Merge combines two schemas, requiring field-wise identical kinds and
// sizes at shared names (util.py's TileTemplate.merge). The result
// preserves s's field order, appending any fields only present in other.
func (s *Schema) Merge(other *Schema) (*Schema, error) {
	defs := make([]FieldDef, 0, len(s.fields)+len(other.fields))
	seen := make(map[string]bool, len(s.fields))

	for _, f := range s.fields {
		defs = append(defs, f.def)
		seen[f.def.Name] = true
	}

	for _, f := range other.fields {
		if seen[f.def.Name] {
			idx := s.byName[f.def.Name]
			existing := s.fields[idx].def
			if !sameShape(existing, f.def) {
				return nil, fmt.Errorf("tile: field %q: %w", f.def.Name, ErrIncompatibleMerge)
			}
			continue
		}
		defs = append(defs, f.def)
		seen[f.def.Name] = true
	}

	return NewSchema(defs)
}

func sameShape(a, b FieldDef) bool {
	if a.Kind != b.Kind {
		return false
	}
	if len(a.Sizes) != len(b.Sizes) {
		return false
	}
	for i := range a.Sizes {
		if a.Sizes[i] != b.Sizes[i] {
			return false
		}
	}
	return true
}
