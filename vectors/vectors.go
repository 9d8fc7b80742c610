// Package vectors holds conformance vectors for the generator: named seeds
// with a sequence of calls and the values every port must produce for them.
package vectors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fysac/xprng/prng"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

type Op string

const (
	OpInt     Op = "int"
	OpBytes   Op = "bytes"
	OpSave    Op = "save"
	OpRestore Op = "restore"
)

// Upper bound on Count and Length in a loaded suite.
const maxDraws = 1 << 20

var ErrNoSeed = errors.New("vector has no seed")

type Suite struct {
	Vectors []Vector `yaml:"vectors"`
}

type Vector struct {
	Name string `yaml:"name"`
	// A string or a number. Time seeding cannot be replayed, so it is required.
	Seed  any    `yaml:"seed"`
	Steps []Step `yaml:"steps"`
}

type Step struct {
	Op Op `yaml:"op"`

	// int: Count draws in [Min, Max]. Bounds default to 0 and 255.
	Min   *int `yaml:"min,omitempty"`
	Max   *int `yaml:"max,omitempty"`
	Count int  `yaml:"count,omitempty"`

	// bytes: Length draws, printable ASCII if Readable.
	Length   int  `yaml:"length,omitempty"`
	Readable bool `yaml:"readable,omitempty"`

	Want []int `yaml:"want,omitempty,flow"`
}

// MismatchError reports the first draw that differs from a vector.
type MismatchError struct {
	Vector string
	Step   int
	Index  int
	Want   int
	Got    int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: step %d: draw %d: want %d, got %d", e.Vector, e.Step, e.Index, e.Want, e.Got)
}

type Failure struct {
	Name string
	Err  error
}

func Load(r io.Reader) (*Suite, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Suite
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode suite: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func LoadFile(path string) (*Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return s, nil
}

func (s *Suite) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run replays every vector and returns the ones that failed.
func (s *Suite) Run() []Failure {
	var failures []Failure
	for _, v := range s.Vectors {
		if err := v.Run(); err != nil {
			failures = append(failures, Failure{Name: v.Name, Err: err})
		}
	}
	return failures
}

// Run replays the vector on a freshly seeded generator.
func (v Vector) Run() error {
	g, err := v.generator()
	if err != nil {
		return err
	}
	for i, st := range v.Steps {
		got, err := st.apply(g)
		if err != nil {
			return fmt.Errorf("%s: step %d: %w", v.Name, i, err)
		}
		if !st.draws() {
			continue
		}
		if len(got) != len(st.Want) {
			return fmt.Errorf("%s: step %d: want %d draws, got %d", v.Name, i, len(st.Want), len(got))
		}
		for j := range got {
			if got[j] != st.Want[j] {
				return &MismatchError{Vector: v.Name, Step: i, Index: j, Want: st.Want[j], Got: got[j]}
			}
		}
	}
	return nil
}

// Record runs steps against a generator seeded with seed and fills in Want.
func Record(name string, seed any, steps []Step) (Vector, error) {
	v := Vector{Name: name, Seed: seed, Steps: make([]Step, len(steps))}
	g, err := v.generator()
	if err != nil {
		return Vector{}, err
	}
	for i, st := range steps {
		got, err := st.apply(g)
		if err != nil {
			return Vector{}, fmt.Errorf("%s: step %d: %w", name, i, err)
		}
		st.Want = got
		v.Steps[i] = st
	}
	return v, nil
}

// Streams draws count default-range values for each seed and returns them as
// a JSON object keyed by seed, in argument order.
func Streams(seeds []any, count int) ([]byte, error) {
	streams := orderedmap.New[string, []int]()
	for _, seed := range seeds {
		if seed == nil {
			return nil, ErrNoSeed
		}
		key := fmt.Sprint(seed)
		if _, present := streams.Get(key); present {
			return nil, fmt.Errorf("duplicate seed: %v", key)
		}
		g, err := prng.New(seed)
		if err != nil {
			return nil, err
		}
		streams.Set(key, g.RandDecimal(count, false))
	}

	b, err := streams.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err = json.Indent(&buf, b, "", "\t"); err != nil {
		return nil, err
	}
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

func (v Vector) generator() (*prng.Generator, error) {
	if v.Seed == nil {
		return nil, fmt.Errorf("%s: %w", v.Name, ErrNoSeed)
	}
	g, err := prng.New(v.Seed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", v.Name, err)
	}
	return g, nil
}

func (s *Suite) validate() error {
	names := make(map[string]bool)
	for i, v := range s.Vectors {
		if v.Name == "" {
			return fmt.Errorf("vector %d has no name", i)
		}
		if names[v.Name] {
			return fmt.Errorf("duplicate vector name: %v", v.Name)
		}
		names[v.Name] = true

		if v.Seed == nil {
			return fmt.Errorf("%s: %w", v.Name, ErrNoSeed)
		}
		for j, st := range v.Steps {
			switch st.Op {
			case OpInt, OpBytes, OpSave, OpRestore:
			default:
				return fmt.Errorf("%s: step %d: unknown op %q", v.Name, j, st.Op)
			}
			if st.Count < 0 || st.Length < 0 {
				return fmt.Errorf("%s: step %d: negative draw count", v.Name, j)
			}
			if st.Count > maxDraws || st.Length > maxDraws {
				return fmt.Errorf("%s: step %d: more than %d draws", v.Name, j, maxDraws)
			}
		}
	}
	return nil
}

func (st Step) draws() bool {
	return st.Op == OpInt || st.Op == OpBytes
}

func (st Step) bounds() (int, int) {
	min, max := prng.DefaultMin, prng.DefaultMax
	if st.Min != nil {
		min = *st.Min
	}
	if st.Max != nil {
		max = *st.Max
	}
	return min, max
}

func (st Step) apply(g *prng.Generator) ([]int, error) {
	switch st.Op {
	case OpInt:
		count := st.Count
		switch {
		case count == 0:
			count = 1
		case count < 0:
			return nil, fmt.Errorf("negative count %d", count)
		}
		min, max := st.bounds()
		out := make([]int, 0, count)
		for i := 0; i < count; i++ {
			v, err := g.RandInt(min, max)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case OpBytes:
		return g.RandDecimal(st.Length, st.Readable), nil
	case OpSave:
		g.SaveState()
		return nil, nil
	case OpRestore:
		return nil, g.RestoreState()
	}
	return nil, fmt.Errorf("unknown op %q", st.Op)
}
