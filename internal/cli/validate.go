package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ivlev/scene2video/internal/engine"
	"github.com/ivlev/scene2video/internal/source"
)

// FileResult is the validation outcome of one project file.
type FileResult struct {
	Path     string   `json:"path"`
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool         `json:"valid"`
	Files []FileResult `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Check project documents against the schema",
		Long: `Check one project file, or every .json/.yaml/.yml file in a directory,
against the project schema. With --strict, records that composition would skip
or repair also fail validation.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(rootOpts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(rootOpts, cmd)

	paths, err := source.Discover(path)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeNotFound, "project path not found", err, nil)
	}
	if len(paths) == 0 {
		return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("no project files found in %s", path), nil, nil)
	}

	composer := engine.NewComposer(rootOpts.Config.Width, rootOpts.Config.Height)
	result := ValidationResult{Valid: true, Files: make([]FileResult, 0, len(paths))}
	for _, p := range paths {
		f.VerboseLog("[*] Validating %s", p)
		fr := validateOne(composer, p, rootOpts.Config.Strict)
		if !fr.Valid {
			result.Valid = false
		}
		result.Files = append(result.Files, fr)
	}

	if f.Format == "json" {
		status := "ok"
		if !result.Valid {
			status = "error"
		}
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(CLIResponse{Status: status, Data: result}); err != nil {
			return err
		}
	} else {
		writeValidationText(f.Writer, result)
	}

	if !result.Valid {
		return NewExitError(ExitFailure, "validation failed")
	}
	return nil
}

func validateOne(composer *engine.Composer, path string, strict bool) FileResult {
	fr := FileResult{Path: path, Valid: true}

	if err := source.ValidateFile(path); err != nil {
		fr.Valid = false
		var verr *source.ValidationError
		if errors.As(err, &verr) {
			fr.Problems = verr.Problems
		} else {
			fr.Problems = []string{err.Error()}
		}
		return fr
	}

	project, err := source.Load(path)
	if err != nil {
		fr.Valid = false
		fr.Problems = []string{err.Error()}
		return fr
	}
	fr.Warnings = composer.Compose(project).Warnings
	if strict && len(fr.Warnings) > 0 {
		fr.Valid = false
	}
	return fr
}

func writeValidationText(w io.Writer, result ValidationResult) {
	for _, fr := range result.Files {
		if fr.Valid {
			fmt.Fprintf(w, "✓ %s\n", fr.Path)
		} else {
			fmt.Fprintf(w, "✗ %s\n", fr.Path)
		}
		for _, p := range fr.Problems {
			fmt.Fprintf(w, "  %s\n", p)
		}
		for _, warn := range fr.Warnings {
			fmt.Fprintf(w, "  [!] %s\n", warn)
		}
	}
	if result.Valid {
		fmt.Fprintln(w, "✓ All projects valid")
	} else {
		fmt.Fprintln(w, "✗ Validation failed")
	}
}
