package rng

import "fmt"

// Spec is a declarative description of a variate stream, decodable from a
// scenario config file.
type Spec struct {
	Type   string             `yaml:"type" json:"type"`
	Params map[string]float64 `yaml:"params" json:"params"`
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("%w: distribution requires parameter %q", ErrInvalidParameter, k)
		}
	}
	return nil
}

// NewSampler creates a Sampler from a Spec.
func NewSampler(spec Spec, opts ...Option) (Sampler, error) {
	switch spec.Type {
	case "uniform":
		if err := requireParam(spec.Params, "lo", "hi"); err != nil {
			return nil, err
		}
		return NewUniform(spec.Params["lo"], spec.Params["hi"], opts...)

	case "exponential":
		if err := requireParam(spec.Params, "mean"); err != nil {
			return nil, err
		}
		return NewExponential(spec.Params["mean"], opts...)

	case "normal":
		if err := requireParam(spec.Params, "mean", "std_dev"); err != nil {
			return nil, err
		}
		return NewNormal(spec.Params["mean"], spec.Params["std_dev"], opts...)

	case "erlang":
		if err := requireParam(spec.Params, "mean", "std_dev"); err != nil {
			return nil, err
		}
		return NewErlang(spec.Params["mean"], spec.Params["std_dev"], opts...)

	case "hyperexponential":
		if err := requireParam(spec.Params, "mean", "std_dev"); err != nil {
			return nil, err
		}
		return NewHyperExponential(spec.Params["mean"], spec.Params["std_dev"], opts...)

	case "triangular":
		if err := requireParam(spec.Params, "a", "b", "c"); err != nil {
			return nil, err
		}
		return NewTriangular(spec.Params["a"], spec.Params["b"], spec.Params["c"], opts...)

	default:
		return nil, fmt.Errorf("%w: unknown distribution type %q", ErrInvalidParameter, spec.Type)
	}
}
