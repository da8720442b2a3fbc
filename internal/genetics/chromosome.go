package genetics

import (
	"errors"
	"fmt"
)

// ErrUnsupportedOperation marks attempts to use a chromosome or a pool as a
// general mutable sequence. Length-changing operations are misuse, not a
// recoverable condition.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// Ploidy levels supported by the engine. The value is the number of states
// each locus may take.
const (
	HaploidStates  = 2
	DiploidStates  = 4
	TriploidStates = 8
)

// Chromosome is a fixed-length sequence of small unsigned integers. Each
// value lies in [0, states) where states is 2, 4 or 8. The length is fixed
// at creation and never changes.
type Chromosome struct {
	states uint8
	values []uint8
}

// NewChromosome builds a chromosome from values, validating every locus
// against the declared state count.
func NewChromosome(values []uint8, states uint8) (*Chromosome, error) {
	switch states {
	case HaploidStates, DiploidStates, TriploidStates:
	default:
		return nil, fmt.Errorf("states must be 2, 4 or 8, got %d", states)
	}
	copied := make([]uint8, len(values))
	for i, v := range values {
		if v >= states {
			return nil, fmt.Errorf("value %d at locus %d out of range [0, %d)", v, i, states)
		}
		copied[i] = v
	}
	return &Chromosome{states: states, values: copied}, nil
}

func (c *Chromosome) Len() int      { return len(c.values) }
func (c *Chromosome) States() uint8 { return c.states }

func (c *Chromosome) At(i int) uint8 { return c.values[i] }

// Set replaces the value at one locus. The only permitted element-wise
// mutation; the value must stay within the state space.
func (c *Chromosome) Set(i int, v uint8) error {
	if i < 0 || i >= len(c.values) {
		return fmt.Errorf("locus %d out of range [0, %d)", i, len(c.values))
	}
	if v >= c.states {
		return fmt.Errorf("value %d out of range [0, %d)", v, c.states)
	}
	c.values[i] = v
	return nil
}

// SetValues replaces the whole array. The replacement must preserve length
// and stay within the state space.
func (c *Chromosome) SetValues(values []uint8) error {
	if len(values) != len(c.values) {
		return fmt.Errorf("length mismatch: got %d, want %d", len(values), len(c.values))
	}
	for i, v := range values {
		if v >= c.states {
			return fmt.Errorf("value %d at locus %d out of range [0, %d)", v, i, c.states)
		}
	}
	copy(c.values, values)
	return nil
}

// Values returns a copy of the underlying array.
func (c *Chromosome) Values() []uint8 {
	return append([]uint8(nil), c.values...)
}

// Insert is unsupported on chromosome types.
func (c *Chromosome) Insert(int, uint8) error {
	return fmt.Errorf("insert on chromosome: %w", ErrUnsupportedOperation)
}

// Remove is unsupported on chromosome types.
func (c *Chromosome) Remove(int) error {
	return fmt.Errorf("remove on chromosome: %w", ErrUnsupportedOperation)
}

// Invert returns a new chromosome with every locus bitwise complemented
// within the symbol width, i.e. v -> (states-1)-v. The receiver is not
// modified.
func (c *Chromosome) Invert() *Chromosome {
	inverted := make([]uint8, len(c.values))
	for i, v := range c.values {
		inverted[i] = (c.states - 1) - v
	}
	return &Chromosome{states: c.states, values: inverted}
}

// Clone returns a deep copy.
func (c *Chromosome) Clone() *Chromosome {
	return &Chromosome{states: c.states, values: append([]uint8(nil), c.values...)}
}

// Equal reports element-wise equality. Chromosomes of different state
// counts are never equal.
func (c *Chromosome) Equal(other *Chromosome) bool {
	if other == nil || c.states != other.states || len(c.values) != len(other.values) {
		return false
	}
	for i, v := range c.values {
		if v != other.values[i] {
			return false
		}
	}
	return true
}
