package vectors

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fysac/xprng/prng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const referenceSuite = "testdata/reference.yaml"

func TestReferenceSuite(t *testing.T) {
	s, err := LoadFile(referenceSuite)
	require.NoError(t, err)
	require.NotEmpty(t, s.Vectors)

	for _, f := range s.Run() {
		t.Errorf("%s: %v", f.Name, f.Err)
	}
}

func TestRecordMatchesReference(t *testing.T) {
	s, err := LoadFile(referenceSuite)
	require.NoError(t, err)

	for _, v := range s.Vectors {
		steps := make([]Step, len(v.Steps))
		for i, st := range v.Steps {
			st.Want = nil
			steps[i] = st
		}
		got, err := Record(v.Name, v.Seed, steps)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	min, max := 1, 6
	v, err := Record("dice", "roll", []Step{
		{Op: OpInt, Min: &min, Max: &max, Count: 4},
		{Op: OpSave},
		{Op: OpBytes, Length: 3, Readable: true},
		{Op: OpRestore},
		{Op: OpInt},
	})
	require.NoError(t, err)

	s := &Suite{Vectors: []Vector{v}}
	b, err := s.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(b), "seed: roll")

	loaded, err := Load(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Empty(t, loaded.Run())
	assert.Equal(t, v.Steps, loaded.Vectors[0].Steps)
}

func TestMismatch(t *testing.T) {
	const doc = `
vectors:
  - name: broken
    seed: 42
    steps:
      - op: int
        count: 3
        want: [61, 94, 231]
`
	s, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	failures := s.Run()
	require.Len(t, failures, 1)
	assert.Equal(t, "broken", failures[0].Name)

	var mismatch *MismatchError
	require.ErrorAs(t, failures[0].Err, &mismatch)
	assert.Equal(t, MismatchError{Vector: "broken", Step: 0, Index: 2, Want: 231, Got: 230}, *mismatch)
}

func TestShortWant(t *testing.T) {
	v := Vector{Name: "short", Seed: 42, Steps: []Step{{Op: OpInt, Count: 2, Want: []int{61}}}}
	assert.ErrorContains(t, v.Run(), "want 1 draws, got 2")
}

func TestRunErrors(t *testing.T) {
	v := Vector{Name: "no-save", Seed: 1, Steps: []Step{{Op: OpRestore}}}
	assert.ErrorIs(t, v.Run(), prng.ErrInvalidState)

	min, max := 5, 4
	v = Vector{Name: "bad-range", Seed: 1, Steps: []Step{{Op: OpInt, Min: &min, Max: &max}}}
	var rangeErr *prng.InvalidRangeError
	assert.ErrorAs(t, v.Run(), &rangeErr)

	v = Vector{Name: "bool", Seed: true}
	var seedErr *prng.InvalidSeedError
	assert.ErrorAs(t, v.Run(), &seedErr)
}

func TestLoadErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"no seed":        "vectors:\n  - name: a\n    steps: []\n",
		"no name":        "vectors:\n  - seed: 1\n",
		"duplicate name": "vectors:\n  - name: a\n    seed: 1\n  - name: a\n    seed: 2\n",
		"unknown op":     "vectors:\n  - name: a\n    seed: 1\n    steps:\n      - op: shuffle\n",
		"unknown field":  "vectors:\n  - name: a\n    seed: 1\n    colour: red\n",
		"not yaml":       "vectors: [",
	} {
		_, err := Load(strings.NewReader(doc))
		assert.Error(t, err, name)
	}

	_, err := Load(strings.NewReader("vectors:\n  - name: a\n    steps: []\n"))
	assert.True(t, errors.Is(err, ErrNoSeed))
}

func TestStreams(t *testing.T) {
	b, err := Streams([]any{"test", 42, int64(0)}, 4)
	require.NoError(t, err)

	streams := orderedmap.New[string, []int]()
	require.NoError(t, streams.UnmarshalJSON(b))

	var keys []string
	for pair := streams.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"test", "42", "0"}, keys)

	got, _ := streams.Get("42")
	assert.Equal(t, []int{61, 94, 230, 166}, got)
	got, _ = streams.Get("test")
	assert.Equal(t, []int{82, 60, 137, 10}, got)

	assert.True(t, json.Valid(b))
	assert.True(t, bytes.HasSuffix(b, []byte("\n")))
}

func TestStreamsErrors(t *testing.T) {
	_, err := Streams([]any{42, "42"}, 1)
	assert.ErrorContains(t, err, "duplicate seed")

	_, err = Streams([]any{nil}, 1)
	assert.ErrorIs(t, err, ErrNoSeed)

	_, err = Streams([]any{[]int{1}}, 1)
	var seedErr *prng.InvalidSeedError
	assert.ErrorAs(t, err, &seedErr)
}

func FuzzLoad(f *testing.F) {
	suite := &Suite{Vectors: []Vector{{Name: "a", Seed: 1, Steps: []Step{{Op: OpInt, Count: 2}}}}}
	b, err := suite.Marshal()
	if err != nil {
		f.Fatal(err)
	}
	f.Add(b)
	f.Add([]byte("vectors:\n  - name: x\n    seed: \"s\"\n    steps:\n      - op: restore\n"))
	f.Fuzz(func(t *testing.T, b []byte) {
		s, err := Load(bytes.NewReader(b))
		if err != nil {
			return
		}
		s.Run()
	})
}
