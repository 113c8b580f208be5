package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tsxmod/tsxmod/pkg/jsx"
)

// InspectCommand holds configuration for the inspect command.
type InspectCommand struct {
	dialect  string
	function string
	variable string
	element  string
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	ic := &InspectCommand{}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Inspect the structure of a JSX/TSX file",
		Long: `Parse a file and print its imports and useState hooks, plus the
location of any requested function, variable, or element.`,
		Args: cobra.ExactArgs(1),
		RunE: ic.run,
	}

	cmd.Flags().StringVar(&ic.dialect, "dialect", "", "Source dialect: javascript, typescript, tsx (default: by extension)")
	cmd.Flags().StringVar(&ic.function, "function", "", "Locate a function by name")
	cmd.Flags().StringVar(&ic.variable, "variable", "", "Locate a variable by name")
	cmd.Flags().StringVar(&ic.element, "element", "", "Locate the first element with this tag name")

	return cmd
}

func (ic *InspectCommand) run(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	source, err := readSource(path, cfg)
	if err != nil {
		return err
	}

	dialect := resolveDialect(ic.dialect, path, cfg)

	parser, err := jsx.NewParser(dialect)
	if err != nil {
		return err
	}

	tree, err := parser.Parse(cmd.Context(), source)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	out := cmd.OutOrStdout()
	lines := strings.Count(string(source), "\n") + 1

	_, _ = fmt.Fprintf(out, "%s: dialect=%s lines=%d valid=%t\n", path, dialect, lines, !tree.HasError())

	ic.renderImports(cmd, tree)
	ic.renderStateHooks(cmd, tree)

	return ic.renderLookups(cmd, tree)
}

func (ic *InspectCommand) renderImports(cmd *cobra.Command, tree *jsx.Tree) {
	imports := tree.Imports()
	if len(imports) == 0 {
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetTitle("Imports")
	tw.AppendHeader(table.Row{"Source", "Default", "Named", "Namespace"})

	for _, imp := range imports {
		tw.AppendRow(table.Row{imp.Source, imp.Default, strings.Join(imp.Named, ", "), imp.Namespace})
	}

	tw.Render()
}

func (ic *InspectCommand) renderStateHooks(cmd *cobra.Command, tree *jsx.Tree) {
	hooks := tree.StateHooks()
	if len(hooks) == 0 {
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetTitle("State Hooks")
	tw.AppendHeader(table.Row{"Name", "Setter", "Initial", "Line"})

	for _, hook := range hooks {
		tw.AppendRow(table.Row{hook.Name.Text(), hook.Setter.Text(), hook.Initial, hook.Name.Line()})
	}

	tw.Render()
}

// renderLookups resolves the requested function, variable, and element.
// A miss is reported but is not an error.
func (ic *InspectCommand) renderLookups(cmd *cobra.Command, tree *jsx.Tree) error {
	out := cmd.OutOrStdout()

	if ic.function != "" {
		match := tree.FindFunction(ic.function)
		if match != nil {
			_, _ = fmt.Fprintf(out, "function %s: line %d\n", ic.function, match.Node.Line())
		} else {
			_, _ = fmt.Fprintf(out, "function %s: not found\n", ic.function)
		}
	}

	if ic.variable != "" {
		match := tree.FindVariable(ic.variable)
		if match != nil {
			_, _ = fmt.Fprintf(out, "variable %s: line %d\n", ic.variable, match.Binding.Line())
		} else {
			_, _ = fmt.Fprintf(out, "variable %s: not found\n", ic.variable)
		}
	}

	if ic.element != "" {
		node := tree.FindElement(ic.element)
		if !node.IsZero() {
			_, _ = fmt.Fprintf(out, "element <%s>: line %d\n", ic.element, node.Line())
		} else {
			_, _ = fmt.Fprintf(out, "element <%s>: not found\n", ic.element)
		}
	}

	return nil
}
