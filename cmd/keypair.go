package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path"

	"github.com/cockroachdb/errors"
	"github.com/herohall/registry/core/types"
	"github.com/spf13/cobra"
)

type generateKeypairCmdOptions struct {
	Path string
}

func NewGenerateKeypairCommand() *cobra.Command {
	opts := &generateKeypairCmdOptions{}

	cmd := &cobra.Command{
		Use:   "generate-keypair",
		Short: "Generate a new ledger identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateKeypairHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Path, "path", "", "write the identity to `<path>/identity.key` instead of stdout")

	return cmd
}

func generateKeypairHandler(opts *generateKeypairCmdOptions, _ *cobra.Command, _ []string) error {
	raw := make([]byte, types.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		return errors.Wrap(err, "random bytes")
	}
	address, err := types.AddressFromBytes(raw)
	if err != nil {
		return err
	}

	fmt.Printf("Address: %s\n", address)
	if opts.Path == "" {
		return nil
	}

	if err := os.MkdirAll(opts.Path, 0o755); err != nil {
		return errors.Wrap(err, "create directory")
	}
	keyPath := path.Join(opts.Path, "identity.key")
	if _, err := os.Stat(keyPath); err == nil {
		return errors.Newf("refusing to overwrite %s", keyPath)
	}
	if err := os.WriteFile(keyPath, []byte(hex.EncodeToString(raw)), 0o600); err != nil {
		return errors.Wrap(err, "write identity file")
	}
	fmt.Printf("Written to %s\n", keyPath)
	return nil
}
