package commands

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tsxmod/tsxmod/pkg/jsx"
)

// ErrSyntaxIssues is returned when any checked file fails to parse cleanly.
var ErrSyntaxIssues = errors.New("syntax issues found")

// CheckCommand holds configuration for the check command.
type CheckCommand struct {
	dialect string
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	cc := &CheckCommand{}

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Check JSX/TSX files for syntax issues",
		Long:  "Parse each file and report error or missing nodes with their positions.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.dialect, "dialect", "", "Source dialect: javascript, typescript, tsx (default: by extension)")

	return cmd
}

func (cc *CheckCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.AppendHeader(table.Row{"File", "Line", "Col", "Node"})

	issueCount := 0

	for _, path := range args {
		source, readErr := readSource(path, cfg)
		if readErr != nil {
			return readErr
		}

		parser, parserErr := jsx.NewParser(resolveDialect(cc.dialect, path, cfg))
		if parserErr != nil {
			return parserErr
		}

		tree, parseErr := parser.Parse(cmd.Context(), source)
		if parseErr != nil {
			return fmt.Errorf("parse %s: %w", path, parseErr)
		}

		for _, issue := range tree.Issues() {
			issueCount++

			tw.AppendRow(table.Row{path, issue.Line, issue.Column, issue.NodeType})
		}

		tree.Close()
	}

	if issueCount == 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) checked, no issues\n", len(args))

		return nil
	}

	tw.Render()

	return fmt.Errorf("%w: %d issue(s) in %d file(s)", ErrSyntaxIssues, issueCount, len(args))
}
