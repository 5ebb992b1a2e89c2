package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/scpwiki/ftml/internal/cli/ui"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Write ftml.yml even if ftml.yml, ftml.yaml or catalogue.yaml already exists")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a starter ftml.yml in the current directory",
	Long: `init interactively asks a few questions about the project layout
and writes ftml.yml, the file parsers and editors look for to pick up
catalogue overrides and watch settings for a project.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	if !initForce {
		for _, name := range []string{"ftml.yml", "ftml.yaml", "catalogue.yaml"} {
			if _, err := os.Stat(name); err == nil {
				return fmt.Errorf("%s already exists; pass --force to overwrite", name)
			}
		}
	}

	var layout string
	if err := survey.AskOne(&survey.Select{
		Message: "Disambiguation layout:",
		Options: []string{"wikidot", "wikijump"},
		Default: "wikidot",
	}, &layout); err != nil {
		return err
	}

	var allowHTML bool
	if err := survey.AskOne(&survey.Confirm{
		Message: "Allow safe HTML attributes in block heads?",
		Default: true,
	}, &allowHTML); err != nil {
		return err
	}

	var enableInclude bool
	if err := survey.AskOne(&survey.Confirm{
		Message: "Enable [[include]] block recording?",
		Default: false,
	}, &enableInclude); err != nil {
		return err
	}

	var catalogueAnswer string
	if err := survey.AskOne(&survey.Input{
		Message: "Custom catalogue path (blank to use the bundled default):",
	}, &catalogueAnswer); err != nil {
		return err
	}
	catalogueAnswer = strings.TrimSpace(catalogueAnswer)

	configYAML := fmt.Sprintf(`project_name: %s
catalogue:
  path: %q
parser:
  layout: %s
  allow_html_attributes: %t
  recursion_limit: 100
  enable_include: %t
watch:
  patterns:
    - "*.ftml"
    - "*.wiki"
  ignored:
    - "*.swp"
    - "*.swo"
    - "*~"
    - ".DS_Store"
`, filepath.Base(mustGetwd()), catalogueAnswer, layout, allowHTML, enableInclude)

	if err := os.WriteFile("ftml.yml", []byte(configYAML), 0644); err != nil {
		return fmt.Errorf("write ftml.yml: %w", err)
	}

	color.New(color.FgGreen, color.Bold).Println("✔ wrote ftml.yml")

	summary := ui.NewSection(os.Stdout, "Project settings", false)
	summary.AddLine(fmt.Sprintf("layout: %s", layout))
	summary.AddLine(fmt.Sprintf("allow_html_attributes: %t", allowHTML))
	summary.AddLine(fmt.Sprintf("enable_include: %t", enableInclude))
	if catalogueAnswer != "" {
		summary.AddLine(fmt.Sprintf("catalogue: %s", catalogueAnswer))
	} else {
		summary.AddLine("catalogue: bundled default")
	}
	summary.Render()

	fmt.Println("Run `ftml parse <file>` or `ftml watch` to get started.")
	return nil
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}
