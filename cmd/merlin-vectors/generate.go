package main

import (
	"encoding/json"
	"errors"
	"flag"
	"io"
	"os"

	"github.com/MixinNetwork/merlin/conformance"
	"go.uber.org/zap"
)

func generateMain(logger *zap.Logger, args []string) error {
	cfg := conformance.DefaultConfig()
	var output string

	cmdSet := flag.NewFlagSet("generate", flag.ExitOnError)
	cmdSet.StringVar(&cfg.Seed, "seed", cfg.Seed, "generator seed")
	cmdSet.IntVar(&cfg.Scripts, "count", cfg.Scripts, "number of scripts")
	cmdSet.IntVar(&cfg.OpsPerScript, "ops", cfg.OpsPerScript, "transcript operations per script")
	cmdSet.IntVar(&cfg.MaxLen, "max-len", cfg.MaxLen, "maximum message and output length")
	cmdSet.BoolVar(&cfg.AllowEmpty, "allow-empty", cfg.AllowEmpty, "allow zero-length messages and outputs")
	cmdSet.BoolVar(&cfg.IncludeRng, "rng", cfg.IncludeRng, "include synthetic RNG segments")
	cmdSet.StringVar(&output, "o", "-", "output file, - for stdout")
	if err := cmdSet.Parse(args); err != nil {
		return err
	}

	scripts, err := conformance.Generate(cfg)
	if err != nil {
		return err
	}
	scripts = append([]conformance.Script{conformance.ConformanceScript()}, scripts...)

	engine := conformance.EngineRunner{}
	references := []conformance.Runner{conformance.StrobeRunner{}, conformance.MerlinRunner{}}

	vectors := make([]conformance.Vector, 0, len(scripts))
	for _, s := range scripts {
		for _, ref := range references {
			err := conformance.Compare(s, engine, ref)
			if errors.Is(err, conformance.ErrUnsupported) {
				logger.Debug("reference skipped script", zap.String("script", s.Name), zap.String("runner", ref.Name()))
				continue
			}
			if err != nil {
				return err
			}
		}
		v, err := conformance.NewVector(s, engine)
		if err != nil {
			return err
		}
		vectors = append(vectors, v)
	}

	var w io.Writer = os.Stdout
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(vectors); err != nil {
		return err
	}
	logger.Info("vectors written", zap.Int("count", len(vectors)), zap.String("seed", cfg.Seed), zap.String("output", output))
	return nil
}
