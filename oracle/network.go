package oracle

import "fmt"

// Layer is a dense layer; Weights is indexed [out][in].
type Layer struct {
	Weights [][]float64
	Bias    []float64
}

// Network is a feed-forward scorer: dense layers with ReLU between them and a
// single logit at the end.
type Network struct {
	layers []Layer
}

func NewNetwork(layers ...Layer) (*Network, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("%w: network has no layers", ErrInvalidModel)
	}
	in := -1
	for li, l := range layers {
		if len(l.Weights) == 0 || len(l.Weights) != len(l.Bias) {
			return nil, fmt.Errorf("%w: layer %d has %d rows and %d biases", ErrInvalidModel, li, len(l.Weights), len(l.Bias))
		}
		for _, row := range l.Weights {
			if in >= 0 && len(row) != in {
				return nil, fmt.Errorf("%w: layer %d expects %d inputs, row has %d", ErrInvalidModel, li, in, len(row))
			}
			in = len(row)
		}
		in = len(l.Weights)
	}
	if in != 1 {
		return nil, fmt.Errorf("%w: network must end in a single logit, got %d", ErrInvalidModel, in)
	}
	return &Network{layers: layers}, nil
}

func (n *Network) InputDim() int {
	return len(n.layers[0].Weights[0])
}

// Forward returns the raw logit for x.
func (n *Network) Forward(x []float64) float64 {
	activation := x
	last := len(n.layers) - 1
	for li, l := range n.layers {
		next := make([]float64, len(l.Weights))
		for o, row := range l.Weights {
			sum := l.Bias[o]
			for i, w := range row {
				sum += w * activation[i]
			}
			if li != last && sum < 0 {
				sum = 0
			}
			next[o] = sum
		}
		activation = next
	}
	return activation[0]
}
