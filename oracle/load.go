package oracle

import (
	"fmt"
	"io"
	"strconv"

	"github.com/tidwall/gjson"

	"swarm/draft"
)

// Load reads a model document:
//
//	{
//	  "input_dim": 120,
//	  "layers": [{"weights": [[...]], "bias": [...]}, ...],
//	  "calibration": {"a": 1.2, "b": -0.1},
//	  "index": {"23711": 0, "16811": 1, ...},
//	  "pad": 23711
//	}
//
// "pad" is optional and defaults to draft.NoPick.
func Load(r io.Reader, options ...Option) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidModel)
	}
	doc := gjson.ParseBytes(data)

	dim := int(doc.Get("input_dim").Int())
	index := map[draft.MonsterID]int{}
	var parseErr error
	doc.Get("index").ForEach(func(key, value gjson.Result) bool {
		id, err := strconv.Atoi(key.String())
		if err != nil {
			parseErr = fmt.Errorf("%w: index key %q", ErrInvalidModel, key.String())
			return false
		}
		index[draft.MonsterID(id)] = int(value.Int())
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	vocab, err := NewVocabulary(index, dim)
	if err != nil {
		return nil, err
	}

	var layers []Layer
	for _, l := range doc.Get("layers").Array() {
		layer := Layer{Bias: floats(l.Get("bias"))}
		for _, row := range l.Get("weights").Array() {
			layer.Weights = append(layer.Weights, floats(row))
		}
		layers = append(layers, layer)
	}
	network, err := NewNetwork(layers...)
	if err != nil {
		return nil, err
	}

	calibration := Calibration{A: 1}
	if c := doc.Get("calibration"); c.Exists() {
		calibration = Calibration{A: c.Get("a").Float(), B: c.Get("b").Float()}
	}
	if pad := doc.Get("pad"); pad.Exists() {
		options = append([]Option{WithPadding(draft.MonsterID(pad.Int()))}, options...)
	}
	return NewModel(vocab, network, calibration, options...)
}

func floats(r gjson.Result) []float64 {
	arr := r.Array()
	out := make([]float64, len(arr))
	for i, v := range arr {
		out[i] = v.Float()
	}
	return out
}
