// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package seal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lequynhnhu/core/cmd/tagcodec/cli"
	"github.com/lequynhnhu/core/lib/envelope"
)

// KeygenCommand returns the "keygen" command.
func KeygenCommand() *cli.Command {
	return &cli.Command{
		Name:    "keygen",
		Summary: "Generate an age identity for open",
		Description: `Generate a new age X25519 identity and write it to stdout in age
identity file format. The public key is included as a comment; share it
with whoever seals envelopes for you.

The output contains the private key. Redirect it to a file readable only
by you and point envelope.identity_file at it.`,
		Usage: "tagcodec keygen",
		Examples: []cli.Example{
			{
				Description: "Create an identity file",
				Command:     "(umask 077; tagcodec keygen > ~/.config/tagcodec/identity.txt)",
			},
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("keygen takes no arguments, got %q", args[0])
			}
			return writeIdentity(os.Stdout, time.Now())
		},
	}
}

// writeIdentity generates an identity and writes it to w.
func writeIdentity(w io.Writer, now time.Time) error {
	identity, err := envelope.GenerateIdentity()
	if err != nil {
		return cli.Internal("%w", err)
	}
	_, err = fmt.Fprintf(w, "# created: %s\n# public key: %s\n%s\n",
		now.UTC().Format(time.RFC3339), identity.Recipient, identity.Secret)
	return err
}
