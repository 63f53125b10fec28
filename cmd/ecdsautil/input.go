package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"ecdsa25519.dev"
)

// readSecret reads one hex encoded 32-byte secret from the first line of r
func readSecret(r io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading secret: %w", err)
	}
	return parseHex(strings.TrimSpace(line), ecdsa25519.ScalarSize)
}

// parseHex decodes a hex string of exactly n bytes
func parseHex(s string, n int) ([]byte, error) {
	if len(s) != 2*n {
		return nil, fmt.Errorf("expected %d hex characters, got %d", 2*n, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// hashFile streams a file through SHA-256; "-" reads stdin
func hashFile(name string, stdin io.Reader) ([ecdsa25519.HashSize]byte, error) {
	var digest [ecdsa25519.HashSize]byte

	r := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return digest, fmt.Errorf("can't open file: %w", err)
		}
		defer f.Close()
		r = f
	}

	h := ecdsa25519.NewSHA256()
	if _, err := io.Copy(h, r); err != nil {
		return digest, fmt.Errorf("unable to read file: %w", err)
	}
	h.Finalize(digest[:])
	return digest, nil
}
