// Package matrix provides a combinatorial engine over named value
// dimensions. It computes the full cartesian product of all registered
// dimensions as a deterministic sequence of labeled combinations.
package matrix

// Combination is one element of the cartesian product: a mapping from
// dimension name to the value selected for that cell.
type Combination struct {
	values map[string]any
	order  []string
}

// Value returns the value selected for the named dimension, or nil if the
// dimension does not exist.
func (c *Combination) Value(name string) any {
	return c.values[name]
}

// Values returns a copy of the combination's dimension→value mapping.
func (c *Combination) Values() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// Dimensions returns the dimension names in registration order.
func (c *Combination) Dimensions() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

type dimension struct {
	name   string
	values []any
}

// Matrix holds named dimensions and computes their cartesian product.
// It is a plain value object: not safe for concurrent mutation, but
// independent instances may be computed concurrently.
type Matrix struct {
	dims []dimension
}

// New creates an empty Matrix.
func New() *Matrix {
	return &Matrix{}
}

// SetDimension registers or replaces a named dimension. An empty value
// slice is legal and collapses the whole product to zero combinations.
func (m *Matrix) SetDimension(name string, values []any) {
	for i := range m.dims {
		if m.dims[i].name == name {
			m.dims[i].values = values
			return
		}
	}
	m.dims = append(m.dims, dimension{name: name, values: values})
}

// Size returns the number of combinations Compute will produce: the
// product of all dimension value counts.
func (m *Matrix) Size() int {
	if len(m.dims) == 0 {
		return 0
	}
	size := 1
	for _, d := range m.dims {
		size *= len(d.values)
	}
	return size
}

// Compute returns the full cartesian product across all registered
// dimensions. The order is deterministic: dimensions are expanded in
// registration order with the first-registered dimension varying slowest,
// and each dimension's values are visited in the order supplied. Two calls
// on an unmodified Matrix yield identical sequences.
func (m *Matrix) Compute() []*Combination {
	size := m.Size()
	if size == 0 {
		return nil
	}

	order := make([]string, len(m.dims))
	for i, d := range m.dims {
		order[i] = d.name
	}

	combos := make([]*Combination, 0, size)
	indices := make([]int, len(m.dims))

	for {
		values := make(map[string]any, len(m.dims))
		for i, d := range m.dims {
			values[d.name] = d.values[indices[i]]
		}
		combos = append(combos, &Combination{values: values, order: order})

		// Advance the last dimension first so the first varies slowest.
		i := len(indices) - 1
		for i >= 0 {
			indices[i]++
			if indices[i] < len(m.dims[i].values) {
				break
			}
			indices[i] = 0
			i--
		}
		if i < 0 {
			return combos
		}
	}
}
