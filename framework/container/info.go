package container

import "github.com/km-arc/go-gears/framework/container/slots"

// Info describes a binding without resolving it.
type Info struct {
	Key        string `json:"key"`
	Slot       string `json:"slot"`
	Visibility string `json:"visibility"`
	Kind       string `json:"kind"`
	Resolved   bool   `json:"resolved"`
	Frozen     bool   `json:"frozen"`
}

// Inspect returns the Info for key.
func (c *Container) Inspect(key string) (Info, error) {
	b, err := c.accessible("inspect", key)
	if err != nil {
		return Info{}, err
	}
	vis, _ := c.slots.Visibility(key)
	return Info{
		Key:        key,
		Slot:       slots.Name(key),
		Visibility: vis.String(),
		Kind:       b.kind.String(),
		Resolved:   b.resolved,
		Frozen:     b.frozen,
	}, nil
}

// Infos returns the Info of every accessible key, in Keys order.
func (c *Container) Infos() []Info {
	keys := c.Keys()
	out := make([]Info, 0, len(keys))
	for _, k := range keys {
		if info, err := c.Inspect(k); err == nil {
			out = append(out, info)
		}
	}
	return out
}
