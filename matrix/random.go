// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math/rand"
)

// Randomize overwrites every element of m with a uniform draw from [lo, hi).
// Elements are drawn in row-major order so a given seed reproduces the same
// matrix bit for bit.
func (m *Dense) Randomize(rng *rand.Rand, lo, hi float64) error {
	if m == nil {
		return fmt.Errorf("Randomize: %w", ErrNilMatrix)
	}
	if rng == nil {
		return fmt.Errorf("Randomize: %w", ErrNilSource)
	}
	span := hi - lo
	for i := range m.data {
		m.data[i] = lo + span*rng.Float64()
	}

	return nil
}

// Random allocates an r×c matrix filled by Randomize.
func Random(rng *rand.Rand, rows, cols int, lo, hi float64) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if err = m.Randomize(rng, lo, hi); err != nil {
		return nil, err
	}

	return m, nil
}
