package grid

import "errors"

// ErrMissingField names the case of a grid schema lacking a field a
// constraint needs (e.g. PropagateColour on a schema built without
// colour_ux/colour_uy). The constraints in this package do not return it:
// they read fields through tile.Instance.Get, which panics on a missing
// field.
var ErrMissingField = errors.New("grid: schema is missing a field required by this constraint")
