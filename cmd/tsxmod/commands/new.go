package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsxmod/tsxmod/internal/config"
	"github.com/tsxmod/tsxmod/pkg/operations"
)

var (
	// ErrUnknownTemplate indicates an unrecognized scaffold template name.
	ErrUnknownTemplate = errors.New("unknown template (expected provider, store, or component)")
	// ErrMalformedField indicates a --field or --prop value missing the '=' separator.
	ErrMalformedField = errors.New("malformed key=value pair")
	// ErrComponentSourceRequired indicates the component template was used without --from.
	ErrComponentSourceRequired = errors.New("component template requires --from and --target")
)

// NewFileCommand holds configuration for the new command.
type NewFileCommand struct {
	name    string
	fields  []string
	dialect string
	outDir  string

	// component extraction only.
	fromPath string
	target   string
	props    []string
	write    bool
}

// NewNewCommand creates the new command.
func NewNewCommand() *cobra.Command {
	nc := &NewFileCommand{}

	cmd := &cobra.Command{
		Use:   "new <template>",
		Short: "Originate a provider, store, or extracted component file",
		Long: `Generate a new source file from a template:

  provider   React context provider with state fields and a custom hook
  store      useReducer store with typed actions per field
  component  extract a JSX element from an existing file into a component

Fields are name=initial pairs; the initial value defaults to null.`,
		Args: cobra.ExactArgs(1),
		RunE: nc.run,
	}

	cmd.Flags().StringVarP(&nc.name, "name", "n", "", "Name of the generated provider, store, or component")
	cmd.Flags().StringArrayVar(&nc.fields, "field", nil, "State field as name=initial (repeatable)")
	cmd.Flags().StringVar(&nc.dialect, "dialect", "", "Output dialect: javascript, typescript, tsx")
	cmd.Flags().StringVarP(&nc.outDir, "out", "o", ".", "Directory for the generated file")

	cmd.Flags().StringVar(&nc.fromPath, "from", "", "Source file to extract the component from")
	cmd.Flags().StringVar(&nc.target, "target", "", "Tag name of the element to extract")
	cmd.Flags().StringArrayVar(&nc.props, "prop", nil, "Component prop as name=expression (repeatable)")
	cmd.Flags().BoolVarP(&nc.write, "write", "w", false, "Rewrite the source file after extraction")

	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func (nc *NewFileCommand) run(cmd *cobra.Command, args []string) error {
	template := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	req, source, err := nc.buildRequest(template, cfg)
	if err != nil {
		return err
	}

	catalog, err := operations.NewCatalog(resolveDialect(nc.dialect, nc.fromPath, cfg))
	if err != nil {
		return err
	}

	res, err := catalog.Execute(cmd.Context(), source, req)
	if err != nil {
		return err
	}

	return nc.output(cmd, res)
}

func (nc *NewFileCommand) buildRequest(template string, cfg *config.Config) (operations.Request, string, error) {
	fields, err := parseFields(nc.fields)
	if err != nil {
		return operations.Request{}, "", err
	}

	req := operations.Request{
		Originate: &operations.OriginateOptions{Name: nc.name, Fields: fields},
	}

	switch template {
	case "provider":
		req.Type = operations.OpCreateContextProvider

		return req, "", nil
	case "store":
		req.Type = operations.OpCreateStore

		return req, "", nil
	case "component":
		if nc.fromPath == "" || nc.target == "" {
			return operations.Request{}, "", ErrComponentSourceRequired
		}

		source, readErr := readSource(nc.fromPath, cfg)
		if readErr != nil {
			return operations.Request{}, "", readErr
		}

		props, propsErr := parseProps(nc.props)
		if propsErr != nil {
			return operations.Request{}, "", propsErr
		}

		req.Type = operations.OpExtractComponent
		req.Target = nc.target
		req.Props = props

		return req, string(source), nil
	default:
		return operations.Request{}, "", fmt.Errorf("%w: %s", ErrUnknownTemplate, template)
	}
}

func (nc *NewFileCommand) output(cmd *cobra.Command, res *operations.Result) error {
	path := filepath.Join(nc.outDir, res.FileName)

	err := os.WriteFile(path, []byte(res.FileCode), originatedFileMode)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)

	if res.Code == "" {
		return nil
	}

	// Component extraction also rewrites the source file.
	if nc.write {
		writeErr := os.WriteFile(nc.fromPath, []byte(res.Code), originatedFileMode)
		if writeErr != nil {
			return fmt.Errorf("write %s: %w", nc.fromPath, writeErr)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", nc.fromPath)

		return nil
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), res.Code)

	return nil
}

// parseFields converts name=initial pairs into state fields.
func parseFields(pairs []string) ([]operations.StateField, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	fields := make([]operations.StateField, 0, len(pairs))

	for _, pair := range pairs {
		name, initial, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedField, pair)
		}

		fields = append(fields, operations.StateField{Name: name, Initial: initial})
	}

	return fields, nil
}

// parseProps converts name=expression pairs into a prop map.
func parseProps(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	props := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		name, expr, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedField, pair)
		}

		props[name] = expr
	}

	return props, nil
}
