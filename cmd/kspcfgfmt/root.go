package main

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cybersorcerer/kspcfg/internal/config"
	"github.com/cybersorcerer/kspcfg/internal/diag"
	"github.com/cybersorcerer/kspcfg/internal/format"
	"github.com/cybersorcerer/kspcfg/internal/logger"
	"github.com/cybersorcerer/kspcfg/internal/printer"
)

var (
	flagPath        string
	flagInline      string
	flagIndentation string
	flagStdout      bool
	flagCheck       bool
	flagLossy       bool
	flagConfig      string
	flagDebug       bool
)

var rootCmd = &cobra.Command{
	Use:   "kspcfgfmt",
	Short: "Format KSP ModuleManager config files",
	Long: `kspcfgfmt reorders, aligns, and pretty-prints KSP ModuleManager
(.cfg) patch files. Given a directory it discovers every file under
a GameData ancestor and formats each in parallel; given a file it
formats that file alone; given neither it filters stdin to stdout.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&flagPath, "path", "", "file or directory to format (default: stdin)")
	rootCmd.Flags().StringVar(&flagInline, "inline", "collapse", "single-child node rendering: collapse, keep, or expand")
	rootCmd.Flags().StringVar(&flagIndentation, "indentation", "tabs", `indentation unit: "tabs" or "spaces:N"`)
	rootCmd.Flags().BoolVar(&flagStdout, "stdout", false, "print formatted output instead of writing files in place")
	rootCmd.Flags().BoolVar(&flagCheck, "check", false, "parse only, print Error diagnostics, exit nonzero if any file has one")
	rootCmd.Flags().BoolVar(&flagLossy, "lossy", false, "replace invalid UTF-8 bytes with the replacement character instead of failing")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to a .kspcfgfmt.yaml settings file")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "enable verbose logging")
}

// Execute runs the root command, returning any error for main to print
// and translate into an exit code.
func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	if err := logger.Init(flagDebug); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Close()

	cfg := config.Default()
	configPath := flagConfig
	if configPath == "" {
		configPath = config.Find()
	}
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config %s: %w", configPath, err)
		}
		cfg = loaded
		logger.Info("Loaded config: %s", configPath)
	}

	if cmd.Flags().Changed("inline") {
		cfg.Inline = flagInline
	}
	if cmd.Flags().Changed("indentation") {
		cfg.Indentation = flagIndentation
	}
	settings := cfg.Settings()

	if flagPath == "" {
		return formatStdin(settings)
	}

	info, err := os.Stat(flagPath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", flagPath, err)
	}

	if !info.IsDir() {
		return formatFile(flagPath, settings)
	}

	files, err := discoverConfigFiles(flagPath)
	if err != nil {
		return err
	}

	return formatFilesParallel(files, settings)
}

// formatStdin reads stdin line-wise (spec.md §6 "read stdin
// line-wise") and prints the formatted result to stdout.
func formatStdin(settings printer.Settings) error {
	var b strings.Builder
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		b.WriteString(scanner.Text())
		b.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	text := b.String()
	if flagLossy {
		text = strings.ToValidUTF8(text, "�")
	}

	out, diags := format.Text(settings, text)
	if flagCheck {
		return reportCheck("<stdin>", diags)
	}
	_, err := fmt.Fprint(os.Stdout, out)
	return err
}

// discoverConfigFiles walks root collecting every *.cfg file whose
// path has an ancestor directory literally named "GameData" (ported
// from the original Rust CLI's files_from_path/walkdir ancestor check;
// spec.md §6).
func discoverConfigFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) != ".cfg" {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		if !hasGameDataAncestor(abs) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

func hasGameDataAncestor(path string) bool {
	dir := filepath.Dir(path)
	for {
		if filepath.Base(dir) == "GameData" {
			return true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

// formatFilesParallel formats every file in files concurrently,
// bounded by GOMAXPROCS, via an errgroup.Group (spec.md §6 "format
// each in parallel"; grounded on Tangerg-lynx/flow's errgroup-based
// bounded fan-out).
func formatFilesParallel(files []string, settings printer.Settings) error {
	group, _ := errgroup.WithContext(context.Background())
	group.SetLimit(runtime.GOMAXPROCS(0))

	results := make([]error, len(files))
	for i, path := range files {
		i, path := i, path
		group.Go(func() error {
			results[i] = formatFile(path, settings)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	var failed bool
	for _, err := range results {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("one or more files failed to format")
	}
	return nil
}

// formatFile formats a single file, honoring --check, --lossy, and
// --stdout.
func formatFile(path string, settings printer.Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	text := string(data)
	if flagLossy {
		text = strings.ToValidUTF8(text, "�")
	}

	if flagCheck {
		_, diags := format.Diagnose(text)
		return reportCheck(path, diags)
	}

	out, diags := format.Text(settings, text)
	if diag.HasError(diags) {
		return fmt.Errorf("%s: parse errors, left unchanged", path)
	}

	if flagStdout {
		_, err := fmt.Fprint(os.Stdout, out)
		return err
	}
	return os.WriteFile(path, []byte(out), 0644)
}

// reportCheck prints path\n<diagnostic> for each Error-severity
// diagnostic (spec.md §7) and returns a non-nil error if any were
// found, so the caller's exit code is nonzero.
func reportCheck(path string, diags []diag.Diagnostic) error {
	var errored bool
	for _, d := range diags {
		if d.Severity != diag.SeverityError {
			continue
		}
		errored = true
		fmt.Printf("%s\n%s: %s\n", path, d.Range, d.Message)
	}
	if errored {
		return fmt.Errorf("errors found in %s", path)
	}
	return nil
}
