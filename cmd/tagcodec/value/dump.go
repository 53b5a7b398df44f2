// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/lequynhnhu/core/cmd/tagcodec/cli"
	"github.com/lequynhnhu/core/lib/config"
	"github.com/lequynhnhu/core/lib/envelope"
	"github.com/lequynhnhu/core/lib/tagcodec"
)

type dumpParams struct {
	cli.InputParams
	Color string `json:"color" flag:"color" desc:"style output: auto, always, or never (default from config)"`
}

// DumpCommand returns the "dump" command.
func DumpCommand(cfg *config.Config) *cli.Command {
	var params dumpParams

	return &cli.Command{
		Name:    "dump",
		Summary: "Show the offset, tag, and length of every value",
		Description: `Print the structure of a Tagged Value (or a concatenation of them) as
an indented tree: one line per value with its byte offset (hex), its
encoded length, its map key if it has one, and its tag.

Lengths come from probing the headers, so payloads are never decoded.
This makes dump the tool of choice for input that fails to decode: the
tree shows everything up to the first malformed header.

Envelopes are unwrapped first and their header is shown on the first
line. Offsets are then relative to the payload.`,
		Usage: "tagcodec dump [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Dump a file",
				Command:     "tagcodec dump request.tv",
			},
			{
				Description: "Dump without colors, for a bug report",
				Command:     "tagcodec dump --color never events.tv > structure.txt",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("dump", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			data, remainingArgs, err := cli.ReadInput(args, os.Stdin, params.Hex, int64(cfg.Limits.MaxInputBytes))
			if err != nil {
				return err
			}
			if err := cli.RejectArgs("dump", remainingArgs); err != nil {
				return err
			}

			mode := cfg.Output.Color
			if params.Color != "" {
				mode = config.ColorMode(params.Color)
			}
			styles, err := newDumpStyles(os.Stdout, mode)
			if err != nil {
				return err
			}
			return dumpValues(data, os.Stdout, styles, cfg.Limits.MaxInputBytes, logger)
		},
	}
}

// dumpStyles holds the lipgloss styles of each dump line element.
type dumpStyles struct {
	offset    lipgloss.Style
	length    lipgloss.Style
	key       lipgloss.Style
	scalar    lipgloss.Style
	container lipgloss.Style
	legacy    lipgloss.Style
	extension lipgloss.Style
	detail    lipgloss.Style
}

// newDumpStyles builds styles bound to a renderer for w. ColorAuto
// lets the renderer detect the profile of w; the other modes force it.
func newDumpStyles(w io.Writer, mode config.ColorMode) (dumpStyles, error) {
	renderer := lipgloss.NewRenderer(w)
	switch mode {
	case config.ColorAuto:
	case config.ColorAlways:
		renderer.SetColorProfile(termenv.ANSI256)
	case config.ColorNever:
		renderer.SetColorProfile(termenv.Ascii)
	default:
		return dumpStyles{}, cli.Validation("--color must be auto, always, or never, got %q", mode)
	}

	return dumpStyles{
		offset:    renderer.NewStyle().Faint(true),
		length:    renderer.NewStyle().Foreground(lipgloss.Color("8")),
		key:       renderer.NewStyle().Foreground(lipgloss.Color("6")),
		scalar:    renderer.NewStyle().Foreground(lipgloss.Color("2")),
		container: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		legacy:    renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		extension: renderer.NewStyle().Foreground(lipgloss.Color("5")),
		detail:    renderer.NewStyle().Faint(true),
	}, nil
}

// dumpValues writes the structure tree of every value in data to w.
func dumpValues(data []byte, w io.Writer, styles dumpStyles, limit int, logger *slog.Logger) error {
	if envelope.IsEnvelope(data) {
		header, _, err := envelope.ReadHeader(data)
		if err != nil {
			return cli.Internal("read envelope header: %w", err)
		}
		fmt.Fprintf(w, "%s\n", styles.detail.Render(fmt.Sprintf(
			"envelope v%d, %s, %s body, %s payload, digest %x",
			header.Version, header.Compression, humanize.IBytes(uint64(header.BodySize)),
			humanize.IBytes(uint64(header.Length)), header.Digest[:8])))
	}
	payload, err := unwrapInput(data, limit, logger)
	if err != nil {
		return err
	}
	if len(payload) == 0 {
		return cli.Validation("empty input: expected a Tagged Value")
	}

	// Offsets of the largest value set the column width.
	offsetWidth := max(4, len(strconv.FormatInt(int64(len(payload)), 16)))
	lengthWidth := len(strconv.Itoa(len(payload)))

	buf := tagcodec.WrapBuffer(payload)
	nodes := 0
	err = tagcodec.Scan(buf, nil, func(index, offset, length int) error {
		cursor := buf.Duplicate()
		cursor.SetPosition(offset)
		return tagcodec.Walk(cursor, nil, func(node tagcodec.Node) error {
			nodes++
			return writeDumpLine(w, node, styles, offsetWidth, lengthWidth)
		})
	})
	if err != nil {
		return cli.Internal("dump: %w", err)
	}
	logger.Debug("dumped structure", "nodes", nodes, "bytes", len(payload))
	return nil
}

func writeDumpLine(w io.Writer, node tagcodec.Node, styles dumpStyles, offsetWidth, lengthWidth int) error {
	var line strings.Builder
	line.WriteString(styles.offset.Render(fmt.Sprintf("%0*x", offsetWidth, node.Offset)))
	line.WriteString(" ")
	line.WriteString(styles.length.Render(fmt.Sprintf("%*d", lengthWidth, node.Length)))
	line.WriteString(" ")
	line.WriteString(strings.Repeat("  ", node.Depth))
	if node.Keyed {
		line.WriteString(styles.key.Render(strconv.Quote(node.Key)))
		line.WriteString(": ")
	}

	tag := node.Tag.String()
	switch node.Tag {
	case tagcodec.TagMap:
		line.WriteString(styles.container.Render(tag))
		line.WriteString(styles.detail.Render(fmt.Sprintf(" (%d %s)", node.Count, plural(node.Count, "entry", "entries"))))
	case tagcodec.TagArray:
		line.WriteString(styles.container.Render(tag))
		line.WriteString(styles.detail.Render(fmt.Sprintf(" (%d %s)", node.Count, plural(node.Count, "element", "elements"))))
	case tagcodec.TagLegacyMap, tagcodec.TagLegacyArray:
		line.WriteString(styles.legacy.Render(tag))
	default:
		if node.Tag.Builtin() {
			line.WriteString(styles.scalar.Render(tag))
		} else {
			line.WriteString(styles.extension.Render(tag))
		}
	}
	line.WriteString("\n")

	_, err := io.WriteString(w, line.String())
	return err
}

func plural(count int, singular, multiple string) string {
	if count == 1 {
		return singular
	}
	return multiple
}
