package types

import (
	"encoding/json"
	"fmt"
)

// Reduction is the cross-worker combination rule for a single accumulator field.
//
// The rule is declared once at State construction and is fixed for the
// metric's lifetime. Applying the wrong rule (for example averaging counters
// instead of summing them) silently corrupts metrics, so Merge enforces that
// both sides declare the identical rule per field.
type Reduction int8

const (
	// ReduceSum adds scalar accumulators together (counters, summed losses).
	ReduceSum Reduction = iota

	// ReduceConcat appends series accumulators (raw predictions, labels).
	ReduceConcat
)

// String returns the reduction rule name.
func (r Reduction) String() string {
	switch r {
	case ReduceSum:
		return "sum"
	case ReduceConcat:
		return "concat"
	default:
		return fmt.Sprintf("reduction(%d)", int8(r))
	}
}

// StateField declares a single accumulator field: its name, reduction rule,
// and initial value.
//
// A field is either a scalar (ReduceSum) or a series (ReduceConcat); the
// reduction rule determines which representation is active. Use ScalarField
// and SeriesField to construct valid declarations.
type StateField struct {
	Name      string    `json:"name"`
	Reduction Reduction `json:"reduction"`

	// Scalar holds the accumulated value for ReduceSum fields.
	Scalar float64 `json:"scalar,omitempty"`

	// Series holds the accumulated values for ReduceConcat fields.
	Series []float64 `json:"series,omitempty"`

	initial float64
}

// ScalarField declares a sum-reduced scalar accumulator with the given
// initial value.
func ScalarField(name string, initial float64) StateField {
	return StateField{Name: name, Reduction: ReduceSum, Scalar: initial, initial: initial}
}

// SeriesField declares a concat-reduced series accumulator starting empty.
func SeriesField(name string) StateField {
	return StateField{Name: name, Reduction: ReduceConcat}
}

// State is a typed registry of accumulator fields with declared reduction
// rules.
//
// State replaces dynamic per-metric state registration with an explicit
// declaration checked at construction time: field names must be unique and
// non-empty. Fields are stored in declaration order, which is also the
// merge and snapshot order.
//
// State is not safe for concurrent mutation; a Metric instance owns its
// State exclusively (one instance per worker, reduced at read time).
type State struct {
	fields []StateField
	index  map[string]int
}

// NewState constructs a State from explicit field declarations.
//
// Parameters:
//   - fields: Field declarations in accumulation order
//
// Returns:
//   - *State: The constructed state
//   - error: ErrInvalidState if a name is empty or duplicated
func NewState(fields ...StateField) (*State, error) {
	s := &State{
		fields: make([]StateField, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	copy(s.fields, fields)

	for i, f := range s.fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: field %d has empty name", ErrInvalidState, i)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidState, f.Name)
		}
		s.index[f.Name] = i
	}

	return s, nil
}

// MustNewState is like NewState but panics on invalid declarations.
//
// Intended for package-level metric constructors where the field set is a
// compile-time constant.
func MustNewState(fields ...StateField) *State {
	s, err := NewState(fields...)
	if err != nil {
		panic(err)
	}

	return s
}

// Fields returns the field declarations in declaration order.
//
// The returned slice aliases internal storage; callers must treat it as
// read-only.
func (s *State) Fields() []StateField {
	return s.fields
}

// Scalar returns the current value of a ReduceSum field.
func (s *State) Scalar(name string) (float64, error) {
	f, err := s.field(name)
	if err != nil {
		return 0, err
	}
	if f.Reduction != ReduceSum {
		return 0, fmt.Errorf("%w: field %q is %s, not scalar", ErrReductionPolicy, name, f.Reduction)
	}

	return f.Scalar, nil
}

// Series returns the accumulated values of a ReduceConcat field.
//
// The returned slice aliases internal storage; callers must not modify it.
func (s *State) Series(name string) ([]float64, error) {
	f, err := s.field(name)
	if err != nil {
		return nil, err
	}
	if f.Reduction != ReduceConcat {
		return nil, fmt.Errorf("%w: field %q is %s, not series", ErrReductionPolicy, name, f.Reduction)
	}

	return f.Series, nil
}

// Add accumulates delta into a ReduceSum field.
func (s *State) Add(name string, delta float64) error {
	i, ok := s.index[name]
	if !ok {
		return fmt.Errorf("%w: unknown field %q", ErrInvalidState, name)
	}
	if s.fields[i].Reduction != ReduceSum {
		return fmt.Errorf("%w: cannot Add to %s field %q", ErrReductionPolicy, s.fields[i].Reduction, name)
	}
	s.fields[i].Scalar += delta

	return nil
}

// Append accumulates values into a ReduceConcat field.
func (s *State) Append(name string, values ...float64) error {
	i, ok := s.index[name]
	if !ok {
		return fmt.Errorf("%w: unknown field %q", ErrInvalidState, name)
	}
	if s.fields[i].Reduction != ReduceConcat {
		return fmt.Errorf("%w: cannot Append to %s field %q", ErrReductionPolicy, s.fields[i].Reduction, name)
	}
	s.fields[i].Series = append(s.fields[i].Series, values...)

	return nil
}

// Reset restores every field to its declared initial value.
func (s *State) Reset() {
	for i := range s.fields {
		s.fields[i].Scalar = s.fields[i].initial
		s.fields[i].Series = nil
	}
}

// Clone returns a deep copy of the state, including series contents.
func (s *State) Clone() *State {
	clone := &State{
		fields: make([]StateField, len(s.fields)),
		index:  make(map[string]int, len(s.index)),
	}
	copy(clone.fields, s.fields)
	for i := range clone.fields {
		if src := s.fields[i].Series; src != nil {
			clone.fields[i].Series = append([]float64(nil), src...)
		}
	}
	for k, v := range s.index {
		clone.index[k] = v
	}

	return clone
}

// Merge folds another worker's state into this one using the declared
// per-field reduction rules.
//
// Both states must declare the same fields in the same order with identical
// rules; any disagreement returns ErrReductionPolicy without partial
// mutation.
//
// Parameters:
//   - other: The state to fold in (not modified)
//
// Returns:
//   - error: ErrReductionPolicy if the declarations disagree
func (s *State) Merge(other *State) error {
	if len(other.fields) != len(s.fields) {
		return fmt.Errorf("%w: field count mismatch (%d vs %d)",
			ErrReductionPolicy, len(s.fields), len(other.fields))
	}
	for i, f := range s.fields {
		of := other.fields[i]
		if of.Name != f.Name || of.Reduction != f.Reduction {
			return fmt.Errorf("%w: field %d declared %s/%s, remote %s/%s",
				ErrReductionPolicy, i, f.Name, f.Reduction, of.Name, of.Reduction)
		}
	}

	for i := range s.fields {
		switch s.fields[i].Reduction {
		case ReduceSum:
			s.fields[i].Scalar += other.fields[i].Scalar
		case ReduceConcat:
			s.fields[i].Series = append(s.fields[i].Series, other.fields[i].Series...)
		}
	}

	return nil
}

// MarshalJSON serializes the field declarations and current values.
func (s *State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.fields)
}

// UnmarshalJSON restores a snapshot produced by MarshalJSON.
//
// Initial values are not carried on the wire; a restored snapshot resets to
// zero. Snapshots are merge inputs, not long-lived accumulators.
func (s *State) UnmarshalJSON(data []byte) error {
	var fields []StateField
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	restored, err := NewState(fields...)
	if err != nil {
		return err
	}
	*s = *restored

	return nil
}

func (s *State) field(name string) (*StateField, error) {
	i, ok := s.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidState, name)
	}

	return &s.fields[i], nil
}
