package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ecdsa25519.dev"
)

type verifyOptions struct {
	signatures []string
	pubkeys    []string
	minGood    int
}

func newVerifyCmd(a *app) *cobra.Command {
	opts := &verifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify [-s signature ...] [-p pubkey ...] [-n num] file",
		Short: "Verify that at least num signatures of file are valid for distinct keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(a, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.signatures, "signature", "s", nil, "hex encoded signature (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.pubkeys, "pubkey", "p", nil, "hex encoded public key (repeatable)")
	cmd.Flags().IntVarP(&opts.minGood, "min", "n", 1, "minimum number of valid signatures")
	return cmd
}

func runVerify(a *app, opts *verifyOptions, file string, cmd *cobra.Command) error {
	signatures, err := ecdsa25519.NewSet(ecdsa25519.SignatureSize, 5)
	if err != nil {
		return err
	}
	defer signatures.Clear()
	pubkeys, err := ecdsa25519.NewSet(ecdsa25519.PublicKeySize, 5)
	if err != nil {
		return err
	}

	for _, s := range opts.signatures {
		raw, err := parseHex(s, ecdsa25519.SignatureSize)
		if err != nil {
			a.log.Warn("error while reading signature", zap.String("signature", s), zap.Error(err))
			continue
		}
		if err := signatures.Add(raw); err != nil {
			a.log.Error("error adding signature", zap.Error(err))
			return err
		}
	}

	for _, p := range opts.pubkeys {
		raw, err := parseHex(p, ecdsa25519.PublicKeySize)
		if err != nil {
			a.log.Warn("error while reading pubkey", zap.String("pubkey", p), zap.Error(err))
			continue
		}
		pubkey, err := ecdsa25519.ParsePublicKey(raw)
		if err != nil {
			a.log.Warn("invalid pubkey", zap.String("pubkey", p), zap.Error(err))
			continue
		}
		// The canonical encoding makes the set collapse equal points
		packed := pubkey.Serialize()
		if err := pubkeys.Add(packed[:]); err != nil {
			a.log.Error("error adding pubkey", zap.Error(err))
			return err
		}
	}

	if pubkeys.Len() == 0 || signatures.Len() == 0 {
		return errors.New("usage: verify needs at least one valid signature and one valid pubkey")
	}

	digest, err := hashFile(file, cmd.InOrStdin())
	if err != nil {
		a.log.Error("error while hashing file", zap.String("file", file), zap.Error(err))
		return err
	}

	ctxs := make([]*ecdsa25519.VerifyContext, 0, signatures.Len())
	signatures.Each(func(i int, el []byte) bool {
		sig, perr := ecdsa25519.ParseSignature(el)
		if perr == nil {
			perr = sig.Check()
		}
		if perr != nil {
			a.log.Warn("skipping malformed signature", zap.Int("index", i), zap.Error(perr))
			return true
		}
		ctx, perr := ecdsa25519.NewVerifyContext(digest[:], sig)
		if perr != nil {
			err = perr
			return false
		}
		ctxs = append(ctxs, ctx)
		return true
	})
	if err != nil {
		return err
	}

	keys := make([]*ecdsa25519.PublicKey, 0, pubkeys.Len())
	pubkeys.Each(func(i int, el []byte) bool {
		pubkey, perr := ecdsa25519.ParsePublicKey(el)
		if perr != nil {
			err = perr
			return false
		}
		keys = append(keys, pubkey)
		return true
	})
	if err != nil {
		return err
	}

	good := ecdsa25519.VerifyList(ctxs, keys)
	a.log.Info("verified signatures",
		zap.Int("good", good),
		zap.Int("required", opts.minGood),
		zap.Int("signatures", len(ctxs)),
		zap.Int("pubkeys", len(keys)),
	)

	if good < opts.minGood {
		return errVerifyFailed
	}
	return nil
}
