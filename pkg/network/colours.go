package network

import "fmt"

// GetInputOutputColours scans network for external ports: a node's input
// pair or output pair with exactly one don't-care entry marks the other
// entry as one lane crossing the balancer's boundary on that side. Every
// such lane on the input side must agree on the same colour (and likewise
// for output); inputColour/outputColour default to 0 when a side has no
// external lanes at all. Grounded on every call site of
// belt_balancer.py's get_input_output_colours, which always destructures
// its result as (colour, count) pairs for the input and output sides.
func GetInputOutputColours(network Network) (inputColour, inputCount, outputColour, outputCount int, err error) {
	inputColour, outputColour = -1, -1

	for _, node := range network {
		dontCare := 0
		for _, p := range node.Inputs {
			if !p.Defined {
				dontCare++
			}
		}
		for _, p := range node.Outputs {
			if !p.Defined {
				dontCare++
			}
		}
		if dontCare > 1 {
			return 0, 0, 0, 0, fmt.Errorf("%w: %+v", ErrMultipleDontCarePorts, node)
		}

		if node.Inputs[0].Defined != node.Inputs[1].Defined {
			defined := node.Inputs[0]
			if !defined.Defined {
				defined = node.Inputs[1]
			}
			if inputColour == -1 {
				inputColour = defined.Colour
			} else if inputColour != defined.Colour {
				return 0, 0, 0, 0, fmt.Errorf("%w: input side", ErrInconsistentBoundaryColour)
			}
			inputCount++
		}

		if node.Outputs[0].Defined != node.Outputs[1].Defined {
			defined := node.Outputs[0]
			if !defined.Defined {
				defined = node.Outputs[1]
			}
			if outputColour == -1 {
				outputColour = defined.Colour
			} else if outputColour != defined.Colour {
				return 0, 0, 0, 0, fmt.Errorf("%w: output side", ErrInconsistentBoundaryColour)
			}
			outputCount++
		}
	}

	if inputColour == -1 {
		inputColour = 0
	}
	if outputColour == -1 {
		outputColour = 0
	}
	return inputColour, inputCount, outputColour, outputCount, nil
}
