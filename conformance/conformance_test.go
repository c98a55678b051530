package conformance

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeterministic(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	cfg := DefaultConfig().WithScripts(8)
	a, err := Generate(cfg)
	require.Nil(err)
	b, err := Generate(cfg.Clone())
	require.Nil(err)
	assert.Equal(a, b)
	assert.Len(a, 8)

	c, err := Generate(cfg.Clone().WithSeed("other"))
	require.Nil(err)
	assert.NotEqual(a, c)

	for _, s := range a {
		assert.Nil(s.Validate())
		assert.Equal(OpInit, s.Ops[0].Kind)
	}
}

func TestGenerateConfig(t *testing.T) {
	assert := assert.New(t)

	_, err := Generate(DefaultConfig().WithScripts(0))
	assert.NotNil(err)
	_, err = Generate(DefaultConfig().WithMaxLen(MaxOpLength + 1))
	assert.NotNil(err)
	_, err = Generate(DefaultConfig().WithOpsPerScript(-1))
	assert.NotNil(err)

	scripts, err := Generate(DefaultConfig().WithIncludeRng(false))
	assert.Nil(err)
	for _, s := range scripts {
		for _, op := range s.Ops {
			assert.Contains([]OpKind{OpInit, OpCommit, OpChallenge}, op.Kind)
		}
	}
}

func TestEngineAgainstReferences(t *testing.T) {
	require := require.New(t)

	configs := []*Config{
		DefaultConfig(),
		DefaultConfig().WithSeed("long messages").WithScripts(4).WithOpsPerScript(8).WithMaxLen(20000),
		DefaultConfig().WithSeed("transcript only").WithIncludeRng(false),
	}
	for _, cfg := range configs {
		scripts, err := Generate(cfg)
		require.Nil(err)
		for _, s := range scripts {
			require.Nil(Compare(s, EngineRunner{}, StrobeRunner{}), s.Name)
			if !cfg.IncludeRng {
				require.Nil(Compare(s, EngineRunner{}, MerlinRunner{}), s.Name)
			}
		}
	}
}

func TestConformanceScript(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	s := ConformanceScript()
	require.Nil(s.Validate())

	out, err := EngineRunner{}.Run(s)
	require.Nil(err)
	require.Len(out, 2)
	assert.Len(out[0], 32)
	assert.Len(out[1], 32)
	assert.NotEqual(out[0], out[1])

	assert.Nil(Compare(s, EngineRunner{}, StrobeRunner{}))

	transcript := Script{Name: s.Name, Ops: s.Ops[:3]}
	assert.Nil(Compare(transcript, EngineRunner{}, MerlinRunner{}))

	_, err = MerlinRunner{}.Run(s)
	assert.True(errors.Is(err, ErrUnsupported))
}

func TestZeroLength(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	scripts, err := Generate(DefaultConfig().WithAllowEmpty(true).WithMaxLen(2).WithScripts(4))
	require.Nil(err)
	for _, s := range scripts {
		out, err := EngineRunner{}.Run(s)
		assert.Nil(err)
		assert.Len(out, len(s.outputOps()))
	}

	s := Script{Name: "empty", Ops: []Op{
		{Kind: OpInit, Label: HexBytes("empty")},
		{Kind: OpChallenge, Label: HexBytes("c"), Length: 0},
	}}
	out, err := EngineRunner{}.Run(s)
	require.Nil(err)
	assert.Equal([][]byte{{}}, out)

	_, err = StrobeRunner{}.Run(s)
	assert.True(errors.Is(err, ErrUnsupported))
	_, err = MerlinRunner{}.Run(s)
	assert.True(errors.Is(err, ErrUnsupported))
}

func TestRebuildRng(t *testing.T) {
	assert := assert.New(t)

	entropy := make(HexBytes, 32)
	for i := range entropy {
		entropy[i] = byte(i)
	}
	s := Script{Name: "rebuild", Ops: []Op{
		{Kind: OpInit, Label: HexBytes("rebuild")},
		{Kind: OpBuildRng},
		{Kind: OpWitness, Label: HexBytes("w"), Data: HexBytes("abandoned")},
		{Kind: OpBuildRng},
		{Kind: OpWitness, Label: HexBytes("w"), Data: HexBytes("kept")},
		{Kind: OpFinalize, Data: entropy},
		{Kind: OpRandomBytes, Length: 16},
		{Kind: OpBuildRng},
		{Kind: OpFinalize, Data: entropy},
		{Kind: OpRandomBytes, Length: 16},
		{Kind: OpWipe},
	}}
	assert.Nil(s.Validate())
	assert.Nil(Compare(s, EngineRunner{}, StrobeRunner{}))
}

func TestInvalidScripts(t *testing.T) {
	entropy := make(HexBytes, 32)
	scripts := []Script{
		{Name: "no ops"},
		{Name: "no init", Ops: []Op{{Kind: OpCommit}}},
		{Name: "double init", Ops: []Op{{Kind: OpInit}, {Kind: OpInit}}},
		{Name: "witness first", Ops: []Op{{Kind: OpInit}, {Kind: OpWitness}}},
		{Name: "draw unfinalized", Ops: []Op{{Kind: OpInit}, {Kind: OpBuildRng}, {Kind: OpRandomBytes, Length: 1}}},
		{Name: "short entropy", Ops: []Op{{Kind: OpInit}, {Kind: OpBuildRng}, {Kind: OpFinalize, Data: entropy[:31]}}},
		{Name: "draw after wipe", Ops: []Op{{Kind: OpInit}, {Kind: OpBuildRng}, {Kind: OpFinalize, Data: entropy}, {Kind: OpWipe}, {Kind: OpRandomBytes, Length: 1}}},
		{Name: "negative", Ops: []Op{{Kind: OpInit}, {Kind: OpChallenge, Length: -1}}},
		{Name: "unknown", Ops: []Op{{Kind: OpInit}, {Kind: "ratchet"}}},
	}
	for _, s := range scripts {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			assert := assert.New(t)
			assert.True(errors.Is(s.Validate(), ErrInvalidScript))
			_, err := EngineRunner{}.Run(s)
			assert.True(errors.Is(err, ErrInvalidScript))
			_, err = StrobeRunner{}.Run(s)
			assert.True(errors.Is(err, ErrInvalidScript))
		})
	}
}

type flipRunner struct{ EngineRunner }

func (flipRunner) Name() string { return "flip" }

func (f flipRunner) Run(s Script) ([][]byte, error) {
	out, err := f.EngineRunner.Run(s)
	if err == nil && len(out) > 1 {
		out[1][0] ^= 1
	}
	return out, err
}

func TestMismatch(t *testing.T) {
	assert := assert.New(t)

	s := ConformanceScript()
	err := Compare(s, EngineRunner{}, flipRunner{})
	assert.True(errors.Is(err, ErrMismatch))

	var mismatch *MismatchError
	assert.True(errors.As(err, &mismatch))
	assert.Equal(1, mismatch.Step)
	assert.Equal(6, mismatch.OpIndex)
	assert.Equal("engine", mismatch.A)
	assert.Equal("flip", mismatch.B)
	assert.NotEqual(mismatch.GotA, mismatch.GotB)
}

func TestVectorRoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	v, err := NewVector(ConformanceScript(), StrobeRunner{})
	require.Nil(err)
	data, err := json.Marshal(v)
	require.Nil(err)

	var decoded Vector
	require.Nil(json.Unmarshal(data, &decoded))
	assert.Equal(v.Name, decoded.Name)
	assert.Nil(Check(decoded, EngineRunner{}))

	decoded.Outputs[0][0] ^= 0xff
	assert.True(errors.Is(Check(decoded, EngineRunner{}), ErrMismatch))
}

func TestCheckPermutation(t *testing.T) {
	assert := assert.New(t)

	iterations := 100000
	if testing.Short() {
		iterations = 1000
	}
	assert.Nil(CheckPermutation([]byte("merlin"), iterations))
	assert.Nil(CheckPermutation(make([]byte, 167), 10))
	assert.NotNil(CheckPermutation(make([]byte, 168), 1))
}
