package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/MixinNetwork/merlin/conformance"
	"go.uber.org/zap"
)

func checkMain(logger *zap.Logger, args []string) error {
	var input string

	cmdSet := flag.NewFlagSet("check", flag.ExitOnError)
	cmdSet.StringVar(&input, "i", "-", "vector file, - for stdin")
	if err := cmdSet.Parse(args); err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	var vectors []conformance.Vector
	if err := json.NewDecoder(r).Decode(&vectors); err != nil {
		return fmt.Errorf("decode %s: %w", input, err)
	}

	failed := 0
	for _, v := range vectors {
		if err := conformance.Check(v, conformance.EngineRunner{}); err != nil {
			logger.Error("vector failed", zap.String("script", v.Name), zap.Error(err))
			failed++
			continue
		}
		logger.Debug("vector ok", zap.String("script", v.Name), zap.Int("outputs", len(v.Outputs)))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d vectors failed: %w", failed, len(vectors), conformance.ErrMismatch)
	}
	logger.Info("vectors ok", zap.Int("count", len(vectors)))
	return nil
}
