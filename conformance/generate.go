package conformance

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/MixinNetwork/merlin"
)

const generatorDomain = "merlin-go/conformance/generate"

type generator struct {
	src io.Reader
	cfg *Config
}

func (g *generator) bytes(n int) []byte {
	buf := make([]byte, n)
	if _, err := io.ReadFull(g.src, buf); err != nil {
		panic(err)
	}
	return buf
}

func (g *generator) intn(n int) int {
	return int(binary.LittleEndian.Uint64(g.bytes(8)) % uint64(n))
}

func (g *generator) length() int {
	lo := 1
	if g.cfg.AllowEmpty {
		lo = 0
	}
	return lo + g.intn(g.cfg.MaxLen-lo+1)
}

func (g *generator) label() HexBytes {
	return g.bytes(g.intn(17))
}

func (g *generator) rngSegment() []Op {
	ops := []Op{{Kind: OpBuildRng}}
	for w := g.intn(3); w > 0; w-- {
		ops = append(ops, Op{Kind: OpWitness, Label: g.label(), Data: g.bytes(g.length())})
	}
	ops = append(ops, Op{Kind: OpFinalize, Data: g.bytes(32)})
	for d := 1 + g.intn(3); d > 0; d-- {
		ops = append(ops, Op{Kind: OpRandomBytes, Length: g.length()})
	}
	return append(ops, Op{Kind: OpWipe})
}

// Generate returns cfg.Scripts pseudo-random scripts. The result depends only
// on cfg.
func Generate(cfg *Config) ([]Script, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &generator{
		src: merlin.DerivedEntropy(generatorDomain, []byte(cfg.Seed)),
		cfg: cfg,
	}

	scripts := make([]Script, cfg.Scripts)
	for i := range scripts {
		s := Script{
			Name: fmt.Sprintf("%s/%d", cfg.Seed, i),
			Ops:  []Op{{Kind: OpInit, Label: g.label()}},
		}
		for j := 0; j < cfg.OpsPerScript; j++ {
			switch r := g.intn(100); {
			case cfg.IncludeRng && r < 20:
				s.Ops = append(s.Ops, g.rngSegment()...)
			case r < 60:
				s.Ops = append(s.Ops, Op{Kind: OpCommit, Label: g.label(), Data: g.bytes(g.length())})
			default:
				s.Ops = append(s.Ops, Op{Kind: OpChallenge, Label: g.label(), Length: g.length()})
			}
		}
		scripts[i] = s
	}
	return scripts, nil
}
