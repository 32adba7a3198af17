package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/morozRed/tagjump/internal/config"
	"github.com/morozRed/tagjump/internal/tags"
	"github.com/spf13/cobra"
)

func resolveWorkingDirectory() (string, error) {
	rootPath, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return rootPath, nil
}

// LoadSettings reads .tagjump.toml from the working directory and applies the
// --tags flag on top.
func LoadSettings(cmd *cobra.Command) (*config.Config, error) {
	rootPath, err := resolveWorkingDirectory()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(rootPath)
	if err != nil {
		return nil, err
	}
	tagsPath, err := OptionalStringFlag(cmd, "tags")
	if err != nil {
		return nil, err
	}
	if tagsPath != "" {
		cfg.TagsFile = tagsPath
	}
	return cfg, nil
}

// LoadIndex loads the configured tag file and prints a one-line skip summary
// to stderr when some lines were malformed.
func LoadIndex(cmd *cobra.Command) (*tags.Index, *config.Config, error) {
	cfg, err := LoadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	index, warnings, err := tags.Load(cfg.TagsFile)
	if err != nil {
		return nil, nil, err
	}
	if len(warnings) > 0 {
		fmt.Fprintf(errWriter(cmd), "[warn] %s: %d malformed line(s) skipped (run tagjump check)\n", cfg.TagsFile, len(warnings))
	}
	return index, cfg, nil
}

func ReportWarnings(w io.Writer, path string, warnings []tags.Warning) {
	for _, warning := range warnings {
		fmt.Fprintf(w, "[warn] %s:%d: %s\n", path, warning.Line, warning.Reason)
	}
}

// ParseLocationQuery splits "file:line" or "file:line:column". Column is 0
// when absent.
func ParseLocationQuery(query string) (file string, line, column int, ok bool) {
	parts := strings.Split(strings.TrimSpace(query), ":")
	if len(parts) < 2 {
		return "", 0, 0, false
	}

	numbers := make([]int, 0, 2)
	for len(parts) > 1 && len(numbers) < 2 {
		n, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
		if err != nil || n <= 0 {
			break
		}
		numbers = append([]int{n}, numbers...)
		parts = parts[:len(parts)-1]
	}
	if len(numbers) == 0 {
		return "", 0, 0, false
	}

	file = strings.TrimSpace(strings.Join(parts, ":"))
	if file == "" {
		return "", 0, 0, false
	}
	line = numbers[0]
	if len(numbers) == 2 {
		column = numbers[1]
	}
	return file, line, column, true
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd == nil || cmd.Context() == nil {
		return context.Background()
	}
	return cmd.Context()
}

func inReader(cmd *cobra.Command) io.Reader {
	if cmd == nil {
		return os.Stdin
	}
	return cmd.InOrStdin()
}

func outWriter(cmd *cobra.Command) io.Writer {
	if cmd == nil {
		return os.Stdout
	}
	return cmd.OutOrStdout()
}

func errWriter(cmd *cobra.Command) io.Writer {
	if cmd == nil {
		return os.Stderr
	}
	return cmd.ErrOrStderr()
}
