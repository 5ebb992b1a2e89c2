package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scpwiki/ftml/internal/catalogue"
	"github.com/scpwiki/ftml/internal/cli/ui"
	"github.com/scpwiki/ftml/pkg/ftml"
)

var catalogueCataloguePath string
var catalogueShowCataloguePath string

func init() {
	catalogueListCmd.Flags().StringVar(&catalogueCataloguePath, "catalogue", "", "Path to a catalogue YAML file (default: bundled catalogue)")
	catalogueShowCmd.Flags().StringVar(&catalogueShowCataloguePath, "catalogue", "", "Path to a catalogue YAML file (default: bundled catalogue)")
	catalogueCmd.AddCommand(catalogueListCmd)
	catalogueCmd.AddCommand(catalogueShowCmd)
}

var catalogueCmd = &cobra.Command{
	Use:   "catalogue",
	Short: "Inspect the block catalogue",
}

var catalogueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every block known to the catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := (*ftml.Catalogue)(nil)
		var err error
		if catalogueCataloguePath != "" {
			cat, err = ftml.LoadCatalogue(catalogueCataloguePath)
		} else {
			cat, err = ftml.DefaultCatalogue()
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, ui.CatalogueError(asCatalogueError(err), false))
			return err
		}

		table := ui.NewTable(os.Stdout, []string{"NAME", "HEAD", "BODY", "ALIASES"}, false)
		for _, b := range cat.Blocks() {
			table.AddRow(b.Name, string(b.Head), string(b.Body), joinAliases(b.Aliases))
		}
		table.Render()
		return nil
	},
}

var catalogueShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the full declaration of one block, by name or alias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := (*ftml.Catalogue)(nil)
		var err error
		if catalogueShowCataloguePath != "" {
			cat, err = ftml.LoadCatalogue(catalogueShowCataloguePath)
		} else {
			cat, err = ftml.DefaultCatalogue()
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, ui.CatalogueError(asCatalogueError(err), false))
			return err
		}

		spec, ok := cat.Resolve(args[0])
		if !ok {
			return fmt.Errorf("no block named or aliased %q in the catalogue", args[0])
		}

		ui.Header(os.Stdout, fmt.Sprintf("[[%s]]", spec.Name), false)

		kv := ui.NewKeyValueTable(os.Stdout, false)
		kv.AddRow("head", string(spec.Head))
		kv.AddRow("body", string(spec.Body))
		kv.AddRow("accepts star", strconv.FormatBool(spec.AcceptsStar))
		kv.AddRow("accepts score", strconv.FormatBool(spec.AcceptsScore))
		kv.AddRow("accepts newlines", strconv.FormatBool(spec.AcceptsNewlines))
		kv.AddRow("html attributes", strconv.FormatBool(spec.HTMLAttributes))
		if spec.Special != "" {
			kv.AddRow("special", spec.Special)
		}
		kv.Render()
		fmt.Println()

		if len(spec.Aliases) > 0 {
			aliases := ui.NewSection(os.Stdout, "Aliases", false)
			aliases.AddLine(joinAliases(spec.Aliases))
			aliases.Render()
		}

		if len(spec.Arguments) > 0 {
			args := ui.NewList(os.Stdout, false)
			for _, arg := range spec.Arguments {
				args.AddItem(describeArgument(arg))
			}
			argsSection := ui.NewSection(os.Stdout, "Arguments", false)
			argsSection.Render()
			args.Render()
		}

		return nil
	},
}

// describeArgument renders one ArgumentSpec as a single human-readable line
// for the "catalogue show" argument list.
func describeArgument(arg catalogue.ArgumentSpec) string {
	var b strings.Builder
	b.WriteString(arg.Name)
	typ := arg.Type
	if typ == "" {
		typ = "string"
	}
	fmt.Fprintf(&b, " (%s)", typ)
	if arg.Required {
		b.WriteString(" required")
	}
	if arg.Default != "" {
		fmt.Fprintf(&b, " default=%q", arg.Default)
	}
	if len(arg.Enum) > 0 {
		fmt.Fprintf(&b, " enum=[%s]", strings.Join(arg.Enum, ", "))
	}
	return b.String()
}

func joinAliases(aliases []string) string {
	if len(aliases) == 0 {
		return "-"
	}
	out := aliases[0]
	for _, a := range aliases[1:] {
		out += ", " + a
	}
	return out
}

// asCatalogueError narrows a plain error down to *ftmlerrors.CatalogueError
// for ui.CatalogueError's formatted output, falling back to a bare message
// when the failure happened before validation (e.g. the file didn't exist).
func asCatalogueError(err error) *ftml.CatalogueError {
	if ce, ok := err.(*ftml.CatalogueError); ok {
		return ce
	}
	return &ftml.CatalogueError{Message: err.Error()}
}
