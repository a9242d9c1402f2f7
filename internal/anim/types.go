package anim

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Values []float64

func (v Values) Clone() Values {
	c := make(Values, len(v))
	copy(c, v)
	return c
}

// Validate reports ErrInvalidInput for the first NaN or infinite element.
func (v Values) Validate() error {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: value at index %d is %v", ErrInvalidInput, i, x)
		}
	}
	return nil
}

func (v Values) IsSorted() bool {
	for i := 1; i < len(v); i++ {
		if v[i] < v[i-1] {
			return false
		}
	}
	return true
}

func (v Values) Max() float64 {
	if len(v) == 0 {
		return 0
	}
	m := v[0]
	for _, x := range v[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

// ParseValues parses a comma or whitespace separated list of numbers.
func ParseValues(s string) (Values, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	values := make(Values, 0, len(fields))
	for _, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, f)
		}
		values = append(values, x)
	}
	if err := values.Validate(); err != nil {
		return nil, err
	}
	return values, nil
}

type Kind uint8

const (
	KindCompare Kind = iota + 1
	KindSwap
	KindFinalize
)

var kindNames = map[Kind]string{
	KindCompare:  "compare",
	KindSwap:     "swap",
	KindFinalize: "finalize",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidAnimationEvent, s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: kind %d", ErrInvalidAnimationEvent, uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Event is one recorded step. Finalize events carry J == I.
type Event struct {
	Kind Kind `json:"kind" yaml:"kind"`
	I    int  `json:"i" yaml:"i"`
	J    int  `json:"j" yaml:"j"`
}

func Compare(i, j int) Event { return Event{Kind: KindCompare, I: i, J: j} }
func Swap(i, j int) Event    { return Event{Kind: KindSwap, I: i, J: j} }
func Finalize(i int) Event   { return Event{Kind: KindFinalize, I: i, J: i} }

func (e Event) String() string {
	if e.Kind == KindFinalize {
		return fmt.Sprintf("%s(%d)", e.Kind, e.I)
	}
	return fmt.Sprintf("%s(%d,%d)", e.Kind, e.I, e.J)
}

// Indices returns the positions the event references.
func (e Event) Indices() []int {
	if e.Kind == KindFinalize {
		return []int{e.I}
	}
	return []int{e.I, e.J}
}

// Check validates the kind and bounds of e against a sequence of length n.
func (e Event) Check(n int) error {
	if !e.Kind.Valid() {
		return ErrInvalidAnimationEvent
	}
	for _, idx := range e.Indices() {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidAnimationEvent, idx, n)
		}
	}
	return nil
}

type Log []Event

type Counts struct {
	Compares  int `json:"compares"`
	Swaps     int `json:"swaps"`
	Finalizes int `json:"finalizes"`
}

func (c Counts) Total() int { return c.Compares + c.Swaps + c.Finalizes }

func (l Log) Counts() Counts {
	var c Counts
	for _, e := range l {
		switch e.Kind {
		case KindCompare:
			c.Compares++
		case KindSwap:
			c.Swaps++
		case KindFinalize:
			c.Finalizes++
		}
	}
	return c
}

// Validate checks every event against a sequence of length n.
func (l Log) Validate(n int) error {
	for i, e := range l {
		if err := e.Check(n); err != nil {
			return &EventError{Index: i, Event: e, Wrapped: err}
		}
	}
	return nil
}

type Marker uint8

const (
	MarkerDefault Marker = iota
	MarkerComparing
	MarkerSettled
)

func (m Marker) String() string {
	switch m {
	case MarkerComparing:
		return "comparing"
	case MarkerSettled:
		return "settled"
	default:
		return "default"
	}
}
