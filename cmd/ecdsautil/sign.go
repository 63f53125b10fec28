package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ecdsa25519.dev"
)

func newSignCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sign file",
		Short: "Sign a file with the secret read from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			digest, err := hashFile(args[0], cmd.InOrStdin())
			if err != nil {
				a.log.Error("error while hashing file", zap.String("file", args[0]), zap.Error(err))
				return err
			}

			seckey, err := readSecret(cmd.InOrStdin())
			if err != nil {
				a.log.Error("error reading secret", zap.Error(err))
				return err
			}

			var sig ecdsa25519.SignatureCompact
			if err := ecdsa25519.ECDSASignCompact(&sig, digest[:], seckey); err != nil {
				return err
			}
			for i := range seckey {
				seckey[i] = 0
			}

			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(sig[:]))
			return nil
		},
	}
}
