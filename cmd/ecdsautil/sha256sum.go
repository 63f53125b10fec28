package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSHA256SumCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sha256sum file...",
		Short: "Print SHA-256 digests of files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				digest, err := hashFile(name, cmd.InOrStdin())
				if err != nil {
					a.log.Error("error while hashing file", zap.String("file", name), zap.Error(err))
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", hex.EncodeToString(digest[:]), name)
			}
			return nil
		},
	}
}
