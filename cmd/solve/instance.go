package solve

import (
	"encoding/json"
	"fmt"
	"io"
)

// Instance is the json file format consumed by the solve command.
type Instance struct {
	Values   []int `json:"values"`
	Weights  []int `json:"weights"`
	Capacity int   `json:"capacity"`
}

func ReadInstance(r io.Reader) (*Instance, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var instance Instance
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, err
	}
	if len(instance.Values) == 0 {
		return nil, fmt.Errorf("instance has no items")
	}
	if len(instance.Values) != len(instance.Weights) {
		return nil, fmt.Errorf("instance has %d values but %d weights", len(instance.Values), len(instance.Weights))
	}
	return &instance, nil
}
