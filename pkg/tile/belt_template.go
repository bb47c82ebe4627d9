package tile

// Direction numbering: the four cardinal directions a belt edge can face.
const (
	East  = 0
	North = 1
	West  = 2
	South = 3
)

// DirectionVector returns the (dx, dy) unit vector for a direction.
func DirectionVector(direction int) (int, int) {
	switch direction % 4 {
	case East:
		return 1, 0
	case North:
		return 0, -1
	case West:
		return -1, 0
	default: // South
		return 0, 1
	}
}

// Field names of the production belt-synthesis template.
const (
	FieldInputDirection  = "input_direction"
	FieldOutputDirection = "output_direction"
	FieldAllDirection    = "all_direction"
	FieldIsSplitter      = "is_splitter"
	FieldUnderground     = "underground"
	FieldColour          = "colour"
	FieldColourUX        = "colour_ux"
	FieldColourUY        = "colour_uy"
	FieldNode            = "node"
)

// BeltTemplate builds the per-cell schema used by the belt-balancer and
// make-block compilers: four-way input/output one-hots, a two-way
// splitter-half one-hot, a four-way underground one-hot, a colour number
// wide enough for maxColour, horizontal/vertical underground colour
// carriers, and (when nodeCount > 0) a one-hot assignment of the cell to
// one of nodeCount splitter-network nodes.
//
// colourBits and nodeCount are computed by the caller from the network
// being compiled (network.ColourBits, len(network)) or from make-block's
// own parameters (single-loop mode uses colourBits = cnf.BinLength(W*H),
// i.e. log2(W*H) for the power-of-two areas it accepts, with
// nodeCount = 0, since make-block never assigns cells to network
// nodes).
func BeltTemplate(colourBits, nodeCount int) (*Schema, error) {
	defs := []FieldDef{
		{Name: FieldInputDirection, Kind: OneHot, Sizes: []int{4}},
		{Name: FieldOutputDirection, Kind: OneHot, Sizes: []int{4}},
		{Name: FieldAllDirection, Kind: Alias, AliasOf: []AliasTerm{
			{Field: FieldInputDirection}, {Field: FieldOutputDirection},
		}},
		{Name: FieldIsSplitter, Kind: OneHot, Sizes: []int{2}},
		{Name: FieldUnderground, Kind: OneHot, Sizes: []int{4}},
		{Name: FieldColour, Kind: Num, Sizes: []int{colourBits}},
		{Name: FieldColourUX, Kind: Num, Sizes: []int{colourBits}},
		{Name: FieldColourUY, Kind: Num, Sizes: []int{colourBits}},
	}
	if nodeCount > 0 {
		defs = append(defs, FieldDef{Name: FieldNode, Kind: OneHot, Sizes: []int{nodeCount}})
	}
	return NewSchema(defs)
}
