package tile

import "github.com/gitrdm/beltcompiler/pkg/cnf"

// OneHotOption is the decoded value of a one_hot field: Present is false
// when every literal in the group was false ("absent"). Modeled as a
// tagged optional rather than a sentinel integer.
type OneHotOption struct {
	Index   int
	Present bool
}

// FieldValue is the parsed value of one field on one cell. Exactly one of
// Bool/Bools/Ints/OneHots is meaningful, selected by Kind; Dims describes
// the shape of the Ints/Bools/OneHots slice for multi-dimensional fields
// (nil or empty for a single scalar value).
type FieldValue struct {
	Kind    FieldKind
	Dims    []int
	Bool    bool
	Bools   []bool
	Ints    []int
	OneHots []OneHotOption
}

// ParsedTile is the decoded form of one cell: field name to its value.
type ParsedTile map[string]FieldValue

// Parse consumes a flat Boolean assignment for the literal range of a
// single tile (length must equal Schema.Size, 0-indexed by literal-1) and
// reconstructs every declared field's value, mirroring
// util.py's TileTemplate.parse for one tile's worth of variables.
func (s *Schema) Parse(tileBits []bool) (ParsedTile, error) {
	if len(tileBits) != s.Size {
		return nil, errSizeMismatch(len(tileBits), s.Size)
	}

	out := make(ParsedTile, len(s.fields))
	for _, f := range s.fields {
		if f.def.Kind == Alias {
			continue
		}
		bits := tileBits[f.offset : f.offset+f.width]
		out[f.def.Name] = parseField(f.def, bits)
	}
	return out, nil
}

// ParseAssignment parses a whole-grid Boolean assignment (1-indexed,
// assignment[0] unused, length >= numTiles*Size) into numTiles ParsedTile
// values in row-major order.
func (s *Schema) ParseAssignment(assignment []bool, numTiles int) ([]ParsedTile, error) {
	tiles := make([]ParsedTile, numTiles)
	for i := 0; i < numTiles; i++ {
		base := i * s.Size
		if base+s.Size+1 > len(assignment) {
			return nil, errSizeMismatch(len(assignment), (i+1)*s.Size+1)
		}
		bits := assignment[base+1 : base+s.Size+1]
		parsed, err := s.Parse(bits)
		if err != nil {
			return nil, err
		}
		tiles[i] = parsed
	}
	return tiles, nil
}

func parseField(def FieldDef, bits []bool) FieldValue {
	switch def.Kind {
	case Bool:
		return FieldValue{Kind: Bool, Bool: bits[0]}
	case Arr:
		out := make([]bool, len(bits))
		copy(out, bits)
		return FieldValue{Kind: Arr, Dims: def.Sizes, Bools: out}
	case Num, SignedNum:
		return parseNumeric(def, bits)
	case OneHot:
		return parseOneHot(def, bits)
	default:
		return FieldValue{Kind: def.Kind}
	}
}

func parseNumeric(def FieldDef, bits []bool) FieldValue {
	sizes := def.Sizes
	width := sizes[len(sizes)-1]
	leading := sizes[:len(sizes)-1]

	if width == 0 {
		count := productInts(leading)
		return FieldValue{Kind: def.Kind, Dims: leading, Ints: make([]int, count)}
	}

	count := len(bits) / width
	ints := make([]int, count)
	for i := 0; i < count; i++ {
		ints[i] = cnf.ReadNumber(bits[i*width:(i+1)*width], def.Kind == SignedNum)
	}
	return FieldValue{Kind: def.Kind, Dims: leading, Ints: ints}
}

func parseOneHot(def FieldDef, bits []bool) FieldValue {
	sizes := def.Sizes
	width := sizes[len(sizes)-1]
	leading := sizes[:len(sizes)-1]

	if width == 0 {
		count := productInts(leading)
		return FieldValue{Kind: OneHot, Dims: leading, OneHots: make([]OneHotOption, count)}
	}

	count := len(bits) / width
	out := make([]OneHotOption, count)
	for i := 0; i < count; i++ {
		group := bits[i*width : (i+1)*width]
		out[i] = decodeOneHot(group)
	}
	return FieldValue{Kind: OneHot, Dims: leading, OneHots: out}
}

// decodeOneHot returns the index of the first true bit, or Present=false
// if none were set. Multiple true bits (a template violation that the
// upstream AMO/EO encoder is responsible for preventing) resolve to the
// first true index, left unconstrained by the template itself.
func decodeOneHot(group []bool) OneHotOption {
	for i, b := range group {
		if b {
			return OneHotOption{Index: i, Present: true}
		}
	}
	return OneHotOption{}
}

func productInts(vs []int) int {
	p := 1
	for _, v := range vs {
		p *= v
	}
	return p
}
