// Command ecdsautil generates keys, signs files and verifies k-of-n
// signature sets with deterministic curve25519 ECDSA.
package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// errVerifyFailed is returned when fewer than the required number of
// signatures are valid; it maps to exit code 1 without further output
var errVerifyFailed = errors.New("not enough valid signatures")

type app struct {
	logLevel string
	log      *zap.Logger
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:       "level",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(lvl))
	return zap.New(core), nil
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "ecdsautil",
		Short:         "Deterministic curve25519 ECDSA key, signing and verification tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(a.logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newGenerateKeyCmd(a),
		newShowKeyCmd(a),
		newSignCmd(a),
		newVerifyCmd(a),
		newSHA256SumCmd(a),
	)
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errVerifyFailed) {
			root.PrintErrln("Error:", err)
		}
		os.Exit(1)
	}
}
