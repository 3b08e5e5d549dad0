package core

// Props is an insertion-ordered attribute map. Setting an existing key keeps
// its original position and overwrites the value.
type Props struct {
	keys   []string
	values map[string]string
}

func NewProps(pairs ...string) Props {
	var p Props
	for i := 0; i+1 < len(pairs); i += 2 {
		p.Set(pairs[i], pairs[i+1])
	}
	return p
}

func (p *Props) Set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

func (p Props) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

func (p Props) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

func (p Props) Len() int {
	return len(p.keys)
}

// Without returns a copy of p minus the given keys.
func (p Props) Without(keys ...string) Props {
	skip := make(map[string]bool, len(keys))
	for _, k := range keys {
		skip[k] = true
	}

	var out Props
	for _, k := range p.keys {
		if skip[k] {
			continue
		}
		out.Set(k, p.values[k])
	}
	return out
}

func (p Props) Map() map[string]string {
	out := make(map[string]string, len(p.keys))
	for _, k := range p.keys {
		out[k] = p.values[k]
	}
	return out
}
