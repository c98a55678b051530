package main

import (
	"flag"
	"time"

	"github.com/MixinNetwork/merlin/conformance"
	"go.uber.org/zap"
)

func permuteMain(logger *zap.Logger, args []string) error {
	var (
		iterations int
		seed       string
	)

	cmdSet := flag.NewFlagSet("permute", flag.ExitOnError)
	cmdSet.IntVar(&iterations, "iterations", 1000000, "number of permutation iterates to compare")
	cmdSet.StringVar(&seed, "seed", "merlin-vectors", "SHAKE128 input, shorter than 168 bytes")
	if err := cmdSet.Parse(args); err != nil {
		return err
	}

	start := time.Now()
	if err := conformance.CheckPermutation([]byte(seed), iterations); err != nil {
		return err
	}
	elapsed := time.Since(start)
	logger.Info("permutation matches SHAKE128",
		zap.Int("iterations", iterations),
		zap.Duration("elapsed", elapsed),
		zap.Float64("permutations_per_second", float64(iterations)/elapsed.Seconds()))
	return nil
}
