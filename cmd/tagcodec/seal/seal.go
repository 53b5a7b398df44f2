// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package seal

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/lequynhnhu/core/cmd/tagcodec/cli"
	"github.com/lequynhnhu/core/lib/config"
	"github.com/lequynhnhu/core/lib/envelope"
)

type sealParams struct {
	cli.InputParams
	Recipients []string `json:"recipients" flag:"recipient,r" desc:"age public key to seal to, repeatable (default from config envelope.recipients)"`
	Armor      bool     `json:"armor"      flag:"armor,a"     desc:"write ASCII-armored output"`
}

type sealOptions struct {
	recipients  []string
	armor       bool
	compression envelope.Compression
}

// SealCommand returns the "seal" command.
func SealCommand(cfg *config.Config) *cli.Command {
	var params sealParams

	return &cli.Command{
		Name:    "seal",
		Summary: "Encrypt an envelope to age recipients",
		Description: `Encrypt an envelope from stdin (or a file argument) to one or more age
X25519 recipients and write the age file to stdout.

Input that is not already an envelope is wrapped in one first, using
the configured compression. Recipients come from --recipient flags, or
from envelope.recipients in the config file when no flag is given.`,
		Usage: "tagcodec seal [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Seal an encoded value to two recipients",
				Command:     "tagcodec encode --envelope request.json | tagcodec seal -r age1... -r age1... > request.age",
			},
			{
				Description: "Seal with armored output for pasting",
				Command:     "tagcodec seal --armor value.tge",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("seal", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			data, remainingArgs, err := cli.ReadInput(args, os.Stdin, params.Hex, int64(cfg.Limits.MaxInputBytes))
			if err != nil {
				return err
			}
			if err := cli.RejectArgs("seal", remainingArgs); err != nil {
				return err
			}

			options := sealOptions{recipients: params.Recipients, armor: params.Armor}
			if len(options.recipients) == 0 {
				options.recipients = cfg.Envelope.Recipients
			}
			if options.compression, err = cfg.Compression(); err != nil {
				return cli.Validation("config: %w", err)
			}

			if err := cli.CheckBinaryOutput(os.Stdout, params.Armor); err != nil {
				return err
			}
			return sealData(data, os.Stdout, options, logger)
		},
	}
}

// sealData encrypts data, wrapped in an envelope if it is not one, and
// writes the age output to w.
func sealData(data []byte, w io.Writer, options sealOptions, logger *slog.Logger) error {
	if len(data) == 0 {
		return cli.Validation("empty input: expected an envelope or Tagged Value")
	}
	if envelope.IsSealed(data) {
		return cli.Validation("input is already sealed")
	}
	if len(options.recipients) == 0 {
		return cli.Validation("no recipients: pass --recipient or set envelope.recipients in the config")
	}
	if _, err := envelope.ParseRecipients(options.recipients); err != nil {
		return cli.Validation("%w", err)
	}

	if !envelope.IsEnvelope(data) {
		wrapped, err := envelope.Wrap(data, envelope.Options{Compression: options.compression})
		if err != nil {
			return cli.Internal("wrap envelope: %w", err)
		}
		logger.Debug("wrapped input before sealing", "input_bytes", len(data), "envelope_bytes", len(wrapped))
		data = wrapped
	}

	encrypt := envelope.Seal
	if options.armor {
		encrypt = envelope.SealArmored
	}
	sealed, err := encrypt(data, options.recipients)
	if err != nil {
		return cli.Internal("seal: %w", err)
	}
	logger.Debug("sealed envelope", "recipients", len(options.recipients), "sealed_bytes", len(sealed))

	_, err = w.Write(sealed)
	return err
}

type openParams struct {
	cli.InputParams
	Identity  string `json:"identity"   flag:"identity,i"   desc:"age identity file (default from config envelope.identity_file)"`
	Unwrap    bool   `json:"unwrap"     flag:"unwrap,u"     desc:"verify the envelope and write its payload instead"`
	HexOutput bool   `json:"hex_output" flag:"hex-output,X" desc:"write hex text instead of raw bytes"`
}

type openOptions struct {
	unwrap    bool
	hexOutput bool
	limit     int
}

// OpenCommand returns the "open" command.
func OpenCommand(cfg *config.Config) *cli.Command {
	var params openParams

	return &cli.Command{
		Name:    "open",
		Summary: "Decrypt a sealed envelope",
		Description: `Decrypt an age file from stdin (or a file argument) with the identities
in an age identity file, and write the envelope inside it to stdout.

The envelope is always verified. With --unwrap, its payload (the
Tagged Value bytes) is written instead of the envelope itself.

The identity file is --identity, or envelope.identity_file from the
config file. Binary and armored age input are both accepted.`,
		Usage: "tagcodec open [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Open and decode a sealed value",
				Command:     "tagcodec open -i ~/.config/tagcodec/identity.txt request.age | tagcodec decode",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("open", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			data, remainingArgs, err := cli.ReadInput(args, os.Stdin, params.Hex, int64(cfg.Limits.MaxInputBytes))
			if err != nil {
				return err
			}
			if err := cli.RejectArgs("open", remainingArgs); err != nil {
				return err
			}

			identityFile := params.Identity
			if identityFile == "" {
				identityFile = cfg.Envelope.IdentityFile
			}
			if identityFile == "" {
				return cli.Validation("no identity file: pass --identity or set envelope.identity_file in the config")
			}
			identities, err := os.ReadFile(identityFile)
			if errors.Is(err, fs.ErrNotExist) {
				return cli.NotFound("identity file %s does not exist", identityFile)
			} else if err != nil {
				return cli.Internal("read identity file: %w", err)
			}

			if err := cli.CheckBinaryOutput(os.Stdout, params.HexOutput); err != nil {
				return err
			}
			return openData(data, string(identities), os.Stdout, openOptions{
				unwrap:    params.Unwrap,
				hexOutput: params.HexOutput,
				limit:     cfg.Limits.MaxInputBytes,
			}, logger)
		},
	}
}

// openData decrypts sealed data, verifies the envelope inside and writes
// the envelope (or with unwrap, its payload) to w.
func openData(data []byte, identities string, w io.Writer, options openOptions, logger *slog.Logger) error {
	if !envelope.IsSealed(data) {
		return cli.Validation("input is not age-sealed")
	}

	opened, err := envelope.Open(data, identities)
	if errors.Is(err, envelope.ErrNoMatchingIdentity) {
		return cli.Forbidden("%w", err)
	} else if err != nil {
		return cli.Internal("open: %w", err)
	}

	payload, header, err := envelope.UnwrapLimit(opened, options.limit)
	if err != nil {
		return cli.Internal("sealed data does not hold a valid envelope: %w", err)
	}
	logger.Debug("opened envelope", "compression", header.Compression.String(), "payload_bytes", header.Length)

	if options.unwrap {
		return cli.WriteOutput(w, payload, options.hexOutput)
	}
	return cli.WriteOutput(w, opened, options.hexOutput)
}
