package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tsxmod/tsxmod/internal/config"
	"github.com/tsxmod/tsxmod/pkg/observability"
	"github.com/tsxmod/tsxmod/pkg/operations"
	"github.com/tsxmod/tsxmod/pkg/version"
)

// stdinPath selects stdin as the operations source.
const stdinPath = "-"

// originatedFileMode is the permission mode for files the engine creates.
const originatedFileMode = 0o644

// ApplyCommand holds configuration for the apply command.
type ApplyCommand struct {
	opsPath string
	dialect string
	write   bool
	diff    bool
	noColor bool
}

// NewApplyCommand creates the apply command.
func NewApplyCommand() *cobra.Command {
	ac := &ApplyCommand{}

	cmd := &cobra.Command{
		Use:   "apply <file>",
		Short: "Apply structural operations to a JSX/TSX file",
		Long: `Apply a batch of declarative operations to a JSX/TSX source file.

Operations are read as a JSON array from the --ops file (or stdin with
--ops -). They run strictly in order; the first failure stops the batch
and leaves the file untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: ac.run,
	}

	cmd.Flags().StringVarP(&ac.opsPath, "ops", "f", "", "Operations JSON file ('-' for stdin)")
	cmd.Flags().StringVar(&ac.dialect, "dialect", "", "Source dialect: javascript, typescript, tsx (default: by extension)")
	cmd.Flags().BoolVarP(&ac.write, "write", "w", false, "Write result back to the source file")
	cmd.Flags().BoolVar(&ac.diff, "diff", false, "Print a line diff instead of the full result")
	cmd.Flags().BoolVar(&ac.noColor, "no-color", false, "Disable colored diff output")

	_ = cmd.MarkFlagRequired("ops")

	return cmd
}

// originatedFile is a supporting file produced by an origination operation.
type originatedFile struct {
	Name string
	Code string
}

func (ac *ApplyCommand) run(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]
	quiet := isQuiet(cmd)
	progressWriter := cmd.ErrOrStderr()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	source, err := readSource(sourcePath, cfg)
	if err != nil {
		return err
	}

	reqs, err := ac.readOperations(cmd.InOrStdin())
	if err != nil {
		return err
	}

	progressf(quiet, progressWriter, "applying %d operations to %s", len(reqs), sourcePath)

	providers, err := observability.Init(cfg.ObservabilityConfig(observability.ModeCLI, version.Version))
	if err != nil {
		return err
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.Background())
		if shutdownErr != nil {
			providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
		}
	}()

	metrics, err := observability.NewTransformMetrics(providers.Meter)
	if err != nil {
		return err
	}

	result, originated, err := ac.execute(cmd.Context(), cfg, sourcePath, string(source), reqs, metrics)
	if err != nil {
		return err
	}

	progressf(quiet, progressWriter, "applied %d operations", len(reqs))

	return ac.output(cmd.OutOrStdout(), sourcePath, string(source), result, originated)
}

func (ac *ApplyCommand) readOperations(stdin io.Reader) ([]operations.Request, error) {
	var (
		data []byte
		err  error
	)

	if ac.opsPath == stdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(ac.opsPath)
	}

	if err != nil {
		return nil, fmt.Errorf("read operations: %w", err)
	}

	return operations.ParseRequests(data)
}

// execute runs the requests strictly in order against the working text,
// collecting any files that origination operations produce.
func (ac *ApplyCommand) execute(
	ctx context.Context,
	cfg *config.Config,
	sourcePath string,
	source string,
	reqs []operations.Request,
	metrics *observability.TransformMetrics,
) (string, []originatedFile, error) {
	dialect := resolveDialect(ac.dialect, sourcePath, cfg)

	catalog, err := operations.NewCatalog(dialect)
	if err != nil {
		return "", nil, err
	}

	current := source

	var originated []originatedFile

	for i, req := range reqs {
		res, execErr := catalog.Execute(ctx, current, req)

		stats := observability.TransformStats{
			Operation: string(req.Type),
			Succeeded: execErr == nil,
		}
		if execErr == nil && res.FileName != "" {
			stats.OriginatedTemplate = string(req.Type)
		}

		metrics.RecordExecution(ctx, stats)

		if execErr != nil {
			return "", nil, fmt.Errorf("operation %d (%s): %w", i, req.Type, execErr)
		}

		if res.Code != "" {
			current = res.Code
		}

		if res.FileName != "" {
			originated = append(originated, originatedFile{Name: res.FileName, Code: res.FileCode})
		}
	}

	return current, originated, nil
}

func (ac *ApplyCommand) output(
	w io.Writer,
	sourcePath string,
	source string,
	result string,
	originated []originatedFile,
) error {
	if ac.write {
		writeErr := os.WriteFile(sourcePath, []byte(result), originatedFileMode)
		if writeErr != nil {
			return fmt.Errorf("write result: %w", writeErr)
		}

		dir := filepath.Dir(sourcePath)

		for _, file := range originated {
			path := filepath.Join(dir, file.Name)

			writeErr = os.WriteFile(path, []byte(file.Code), originatedFileMode)
			if writeErr != nil {
				return fmt.Errorf("write %s: %w", path, writeErr)
			}
		}

		return nil
	}

	if ac.diff {
		renderDiff(w, source, result, ac.noColor)
	} else {
		_, _ = fmt.Fprint(w, result)
	}

	for _, file := range originated {
		_, _ = fmt.Fprintf(w, "\n--- %s ---\n%s", file.Name, file.Code)
	}

	return nil
}
