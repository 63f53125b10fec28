package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ecdsa25519.dev"
)

func newGenerateKeyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate-key",
		Short: "Generate a new secret key on stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seckey, err := ecdsa25519.ECSeckeyGenerate()
			if err != nil {
				a.log.Error("unable to read random bytes", zap.Error(err))
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(seckey))
			return nil
		},
	}
}

func newShowKeyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show-key",
		Short: "Output the public key of the secret read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seckey, err := readSecret(cmd.InOrStdin())
			if err != nil {
				a.log.Error("error reading secret", zap.Error(err))
				return err
			}

			pubkey, err := ecdsa25519.ECPubkeyCreate(seckey)
			if err != nil {
				return err
			}
			packed := pubkey.Serialize()
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(packed[:]))
			return nil
		},
	}
}
