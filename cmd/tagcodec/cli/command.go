// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command represents a CLI command or subcommand.
type Command struct {
	// Name is the command name as typed by the user (e.g., "decode").
	Name string

	// Summary is a one-line description shown in the parent's help listing.
	Summary string

	// Description is a detailed multi-line description shown in the command's
	// own help output.
	Description string

	// Usage is the usage string (e.g., "tagcodec decode [flags] [file]").
	// If empty, it is synthesized from the command path and subcommands.
	Usage string

	// Examples are shown in the help output after the description.
	Examples []Example

	// Flags returns a configured *pflag.FlagSet for this command. Called
	// lazily on first use. If nil, the command accepts no flags.
	Flags func() *pflag.FlagSet

	// Subcommands are nested commands dispatched by the first positional arg.
	Subcommands []*Command

	// Run executes the command with the remaining args (after flag parsing).
	// Exactly one of Run or Subcommands should be set. If both are set,
	// Run is used when no subcommand matches.
	Run func(ctx context.Context, args []string, logger *slog.Logger) error

	// parent is set during dispatch to build the full command path for help.
	parent *Command
}

// Example is a usage example shown in help output.
type Example struct {
	// Description explains what the example does.
	Description string
	// Command is the literal command line.
	Command string
}

// Execute dispatches args down the command tree: a leading name picks
// a subcommand, the rest is parsed against that command's flags and
// handed to its Run with the logger scoped by the command path.
func (c *Command) Execute(ctx context.Context, args []string, logger *slog.Logger) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(os.Stderr)
		return nil
	}

	if len(c.Subcommands) > 0 && len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, err := c.subcommand(args[0])
		if err != nil {
			return err
		}
		return sub.Execute(ctx, args[1:], logger)
	}

	if c.Run == nil {
		c.PrintHelp(os.Stderr)
		switch {
		case len(c.Subcommands) == 0:
			return Internal("no action defined for %q", c.fullName())
		case len(args) == 0:
			return Validation("subcommand required")
		default:
			return Validation("subcommand required (got flag %q)", args[0])
		}
	}

	args, err := c.parseFlags(args)
	if err != nil {
		return err
	}
	return c.Run(ctx, args, logger.With("command", c.path()))
}

// subcommand finds the named child and links it to c for help paths.
func (c *Command) subcommand(name string) (*Command, error) {
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			sub.parent = c
			return sub, nil
		}
	}
	if suggestion := suggestCommand(name, c.Subcommands); suggestion != "" {
		return nil, Validation("unknown command %q (did you mean %q?)%s", name, suggestion, c.helpHint())
	}
	return nil, Validation("unknown command %q%s", name, c.helpHint())
}

// parseFlags parses args against c.Flags and returns the positional
// arguments left over.
func (c *Command) parseFlags(args []string) ([]string, error) {
	if c.Flags == nil {
		return args, nil
	}
	flagSet := c.Flags()
	// Errors are reported through Validation below, not pflag's usage dump.
	flagSet.SetOutput(io.Discard)
	err := flagSet.Parse(args)
	if err == nil {
		return flagSet.Args(), nil
	}

	message := err.Error()
	if strings.HasPrefix(message, "unknown flag") || strings.HasPrefix(message, "unknown shorthand flag") {
		// Suggest against a fresh set; the failed parse may have set values.
		if suggestion := suggestFlag(args, c.Flags()); suggestion != "" {
			return nil, Validation("%s (did you mean %s?)%s", message, suggestion, c.helpHint())
		}
	}
	return nil, Validation("%s%s", message, c.helpHint())
}

func (c *Command) helpHint() string {
	return fmt.Sprintf("\n\nRun '%s --help' for usage.", c.fullName())
}

// PrintHelp writes the help text of c to w: description, usage, child
// commands, flags, then examples.
func (c *Command) PrintHelp(w io.Writer) {
	name := c.fullName()

	description := c.Description
	if description == "" {
		description = c.Summary
	}
	if description != "" {
		fmt.Fprintf(w, "%s\n\n", description)
	}

	fmt.Fprintf(w, "Usage:\n  %s\n", c.usageLine())

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		table := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(table, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		table.Flush()
	}

	if c.Flags != nil {
		if usage := c.Flags().FlagUsages(); usage != "" {
			fmt.Fprintf(w, "\nFlags:\n%s", usage)
		}
	}

	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for _, example := range c.Examples {
			if example.Description == "" {
				fmt.Fprintf(w, "  %s\n", example.Command)
				continue
			}
			fmt.Fprintf(w, "  # %s\n  %s\n\n", example.Description, example.Command)
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
}

func (c *Command) usageLine() string {
	switch {
	case c.Usage != "":
		return c.Usage
	case len(c.Subcommands) > 0:
		return c.fullName() + " <command> [flags]"
	default:
		return c.fullName() + " [flags]"
	}
}

// fullName returns the command as typed, e.g. "tagcodec decode".
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

// path returns the command path below the root joined with "/", e.g.
// "decode", for log attributes.
func (c *Command) path() string {
	if c.parent == nil || c.parent.parent == nil {
		return c.Name
	}
	return c.parent.path() + "/" + c.Name
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
