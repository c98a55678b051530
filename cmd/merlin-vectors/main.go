// Command merlin-vectors generates and checks merlin conformance vectors.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:  merlin-vectors [-debug] (generate|check|permute) [args...]")
	fmt.Fprintln(os.Stderr, "Commands:  generate  write cross-checked vectors as JSON")
	fmt.Fprintln(os.Stderr, "           check     replay JSON vectors on the engine")
	fmt.Fprintln(os.Stderr, "           permute   compare the permutation with SHAKE128")
	fmt.Fprintln(os.Stderr, "  Give '-h' arg for further help on a command")
	os.Exit(2)
}

func newLogger(debug bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

func main() {
	args := os.Args[1:]
	debug := len(args) > 0 && args[0] == "-debug"
	if debug {
		args = args[1:]
	}
	if len(args) < 1 {
		usage()
	}

	logger := newLogger(debug)
	defer logger.Sync()

	var err error
	switch args[0] {
	case "generate":
		err = generateMain(logger, args[1:])
	case "check":
		err = checkMain(logger, args[1:])
	case "permute":
		err = permuteMain(logger, args[1:])
	default:
		usage()
	}
	if err != nil {
		logger.Error(args[0]+" failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
