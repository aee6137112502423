package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/IvanShishkin/duphound/internal/config"
	"github.com/IvanShishkin/duphound/internal/core"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorOrange = "\033[38;5;208m"
	colorGray   = "\033[38;5;245m"
	colorCyan   = "\033[36m"
)

// palette holds the escape codes used for console output; the zero value prints plain text
type palette struct {
	reset, bold, red, orange, gray, cyan string
}

func newPalette(noColor bool) palette {
	if noColor {
		return palette{}
	}
	return palette{
		reset:  colorReset,
		bold:   colorBold,
		red:    colorRed,
		orange: colorOrange,
		gray:   colorGray,
		cyan:   colorCyan,
	}
}

// envNoColor reports whether no_color is set through the environment or defaults
func envNoColor() bool {
	cfg, err := config.LoadConfig("")
	return err == nil && cfg.NoColor
}

var (
	logger  *zap.Logger
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "duphound",
		Short: "duphound - duplicate file finder",
		Long: `Finds duplicate files below a directory by comparing SHA-256 content digests
and fuzzy file name similarity, and reports the space they waste.`,
		Version: core.Version,
		Run: func(cmd *cobra.Command, args []string) {
			printMainBanner(os.Stdout, newPalette(envNoColor()))
			cmd.Help()
		},
	}

	// Global verbose flag
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	// Disable built-in help command
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Add commands
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(helpCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printMainBanner prints the main banner
func printMainBanner(w io.Writer, p palette) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s%sDUPHOUND%s %sduplicate file finder v%s%s\n", p.bold, p.orange, p.reset, p.gray, core.Version, p.reset)
	fmt.Fprintln(w)
}

// newLogger builds a development logger in verbose mode and a JSON stderr
// logger limited to warnings otherwise, so skipped entries are still reported
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.WarnLevel),
		Encoding:         "json",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}
	return cfg.Build()
}

// scanCmd creates the scan command
func scanCmd() *cobra.Command {
	var (
		root         string
		configFile   string
		score        int
		useHash      bool
		exactNames   bool
		matchSize    bool
		workers      int
		exclude      []string
		digestCase   string
		hashBuffer   string
		reportFormat string
		outputFile   string
		legacySizes  bool
		noColor      bool
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Find duplicate files below a directory",
		Long: `Recursively walk a directory, hash every regular file and group files whose
names are similar and whose content (or size) matches.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPalette(noColor || envNoColor())

			// Validate flags before doing anything
			if err := validateFlags(reportFormat, digestCase, score); err != nil {
				fmt.Printf("\n  %s✗ Invalid parameter:%s %s\n\n", p.red, p.reset, err.Error())
				return err
			}

			// Initialize logger based on verbose flag
			var err error
			logger, err = newLogger()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
				return err
			}
			defer logger.Sync()

			// Load configuration
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}

			// Override config with CLI flags
			flags := cmd.Flags()
			if len(args) > 0 {
				cfg.Root = args[0]
			} else if root != "" {
				cfg.Root = root
			}
			if flags.Changed("score") {
				cfg.ScoreThreshold = score
			}
			if flags.Changed("sha") {
				cfg.UseHash = useHash
			}
			if flags.Changed("exact-names") {
				cfg.ExactNames = exactNames
			}
			if flags.Changed("match-size") {
				cfg.MatchSize = matchSize
			}
			if workers > 0 {
				cfg.Workers = workers
			}
			if len(exclude) > 0 {
				cfg.Exclude = exclude
			}
			if digestCase != "" {
				cfg.DigestCase = digestCase
			}
			if hashBuffer != "" {
				cfg.HashBuffer = hashBuffer
			}
			if reportFormat != "" {
				cfg.ReportFormat = reportFormat
			}
			if outputFile != "" {
				cfg.OutputFile = outputFile
			}
			if flags.Changed("legacy-sizes") {
				cfg.LegacySizeLabels = legacySizes
			}
			if flags.Changed("no-color") {
				cfg.NoColor = noColor
			}

			if cfg.Root == "" {
				return fmt.Errorf("no directory to scan: pass a path or --root")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			p = newPalette(cfg.NoColor)
			printBanner(os.Stdout, cfg, p)

			scanner := core.NewScanner(cfg, logger)
			scanner.SetProgressCallback(progressPrinter(cfg.NoColor))

			results, err := scanner.Scan(cmd.Context(), cfg.Root)
			if err != nil {
				logger.Error("Scan failed", zap.Error(err))
				return err
			}

			printReportPath(os.Stdout, results.ReportPath, p)

			return nil
		},
	}

	// Flags
	cmd.Flags().StringVarP(&root, "root", "f", "", "Directory to scan (alternative to the path argument)")
	cmd.Flags().StringVar(&configFile, "config", "", "Config file (yaml, json or toml)")
	cmd.Flags().IntVarP(&score, "score", "s", 90, "Minimum file name similarity score")
	cmd.Flags().BoolVar(&useHash, "sha", true, "Compare SHA-256 content digests")
	cmd.Flags().BoolVar(&exactNames, "exact-names", false, "Require equal names (ignoring case) instead of fuzzy matching")
	cmd.Flags().BoolVar(&matchSize, "match-size", false, "Without hashing, require equal file sizes")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of worker goroutines (default: CPU cores * 2)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Directory names to skip (comma-separated)")
	cmd.Flags().StringVar(&digestCase, "digest-case", "", "Hex case of digests: upper, lower (default: upper)")
	cmd.Flags().StringVar(&hashBuffer, "hash-buffer", "", "Read buffer used for hashing (default: 64K)")
	cmd.Flags().StringVarP(&reportFormat, "report", "r", "", "Report format: txt, json, yaml, md, html, sqlite (default: console output)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path")
	cmd.Flags().BoolVar(&legacySizes, "legacy-sizes", false, "Use the size labels of earlier releases")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored console output")

	return cmd
}

// progressPrinter renders scan progress on a single updating line per phase
func progressPrinter(noColor bool) core.ProgressCallback {
	p := newPalette(noColor)
	gray, orange, reset := p.gray, p.orange, p.reset

	lastPhase := ""
	return func(phase string, current, total int, message string) {
		// Clear previous line if same phase
		if lastPhase == phase && !noColor {
			fmt.Print("\033[1A\033[K")
		}
		lastPhase = phase

		switch phase {
		case "walking":
			if total > 0 {
				fmt.Printf("  %sFiles:%s     %s\n", gray, reset, message)
			} else {
				fmt.Printf("  %sWalking:%s   %d files\n", gray, reset, current)
			}
		case "clustering":
			if total > 0 {
				pct := float64(current) / float64(total) * 100
				barWidth := 30
				filled := int(float64(barWidth) * float64(current) / float64(total))
				bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
				fmt.Printf("  %sComparing:%s [%s%s%s] %s%.1f%%%s (%d/%d)\n",
					gray, reset, orange, bar, reset, orange, pct, reset, current, total)
			} else {
				fmt.Printf("  %sComparing:%s nothing to compare\n", gray, reset)
			}
		}
	}
}

// validateFlags validates CLI flag values
func validateFlags(reportFormat, digestCase string, score int) error {
	// Validate report format
	if reportFormat != "" && !contains(config.ReportFormats, reportFormat) {
		return fmt.Errorf("--report must be one of: %s (got: %s)", strings.Join(config.ReportFormats, ", "), reportFormat)
	}

	// Validate digest case
	if digestCase != "" {
		validCases := []string{config.DigestUpper, config.DigestLower}
		if !contains(validCases, strings.ToLower(digestCase)) {
			return fmt.Errorf("--digest-case must be one of: %s (got: %s)", strings.Join(validCases, ", "), digestCase)
		}
	}

	if score < 0 {
		return fmt.Errorf("--score must not be negative (got: %d)", score)
	}

	return nil
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// printReportPath prints the path of the generated report, if any
func printReportPath(w io.Writer, path string, p palette) {
	if path == "" {
		return
	}
	fmt.Fprintf(w, "  %sReport:%s    %s%s%s\n", p.gray, p.reset, p.orange, path, p.reset)
	fmt.Fprintln(w)
}

// printBanner prints the startup banner
func printBanner(w io.Writer, cfg *config.Config, p palette) {
	policy := "sha256"
	if !cfg.UseHash {
		policy = "name only"
		if cfg.MatchSize {
			policy = "size"
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s%sDUPHOUND%s %sv%s%s\n", p.bold, p.orange, p.reset, p.gray, core.Version, p.reset)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %sScanning:%s  %s\n", p.gray, p.reset, cfg.Root)
	fmt.Fprintf(w, "  %sMatching:%s  %s, score >= %d\n", p.gray, p.reset, policy, cfg.ScoreThreshold)
	fmt.Fprintln(w)
}

// helpCmd creates a detailed help command
func helpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Show detailed help and documentation",
		Long:  `Display complete documentation including all commands, flags, and examples.`,
		Run: func(cmd *cobra.Command, args []string) {
			p := newPalette(envNoColor())
			printMainBanner(os.Stdout, p)

			fmt.Printf("%s%sABOUT%s\n\n", p.bold, p.orange, p.reset)
			fmt.Printf("  duphound walks a directory tree concurrently, hashes every regular file\n")
			fmt.Printf("  with SHA-256 and groups files with similar names and equal content.\n")
			fmt.Printf("  It only reports; nothing is moved, linked or deleted.\n\n")

			fmt.Printf("%s%sCOMMANDS%s\n\n", p.bold, p.orange, p.reset)
			fmt.Printf("  %sscan [path]%s           Find duplicates below path (or --root)\n", p.bold, p.reset)
			fmt.Printf("  %scompletion <shell>%s    Generate completion for bash, zsh, fish, powershell\n", p.bold, p.reset)

			fmt.Printf("\n%s%sMATCHING FLAGS%s\n\n", p.bold, p.orange, p.reset)
			fmt.Printf("  %s-s, --score%s <n>        Minimum name similarity score (default: 90)\n", p.bold, p.reset)
			fmt.Printf("  %s--sha%s                  Compare content digests (default: true, use --sha=false to disable)\n", p.bold, p.reset)
			fmt.Printf("  %s--match-size%s           With --sha=false, also require equal sizes\n", p.bold, p.reset)
			fmt.Printf("  %s--exact-names%s          Equal names ignoring case instead of fuzzy scoring\n", p.bold, p.reset)
			fmt.Printf("  %s--digest-case%s <case>   Digest hex case: %supper%s, %slower%s\n",
				p.bold, p.reset, p.cyan, p.reset, p.cyan, p.reset)

			fmt.Printf("\n%s%sWALK FLAGS%s\n\n", p.bold, p.orange, p.reset)
			fmt.Printf("  %s-f, --root%s <dir>       Directory to scan\n", p.bold, p.reset)
			fmt.Printf("  %s--workers%s <n>          Parallel workers (default: CPU cores × 2)\n", p.bold, p.reset)
			fmt.Printf("  %s--exclude%s              Directory names to skip (comma-separated)\n", p.bold, p.reset)
			fmt.Printf("  %s--hash-buffer%s <size>   Hash read buffer (default: 64K)\n", p.bold, p.reset)

			fmt.Printf("\n%s%sREPORT FLAGS%s\n\n", p.bold, p.orange, p.reset)
			fmt.Printf("  %s-r, --report%s <fmt>     Report format: %stxt%s, %sjson%s, %syaml%s, %smd%s, %shtml%s, %ssqlite%s\n",
				p.bold, p.reset, p.cyan, p.reset, p.cyan, p.reset, p.cyan, p.reset,
				p.cyan, p.reset, p.cyan, p.reset, p.cyan, p.reset)
			fmt.Printf("                         Without --report the table is printed and saved to duplicate.txt\n")
			fmt.Printf("  %s-o, --output%s <file>    Output file path\n", p.bold, p.reset)
			fmt.Printf("  %s--legacy-sizes%s         Size labels of earlier releases\n", p.bold, p.reset)
			fmt.Printf("  %s--no-color%s             Plain console output\n", p.bold, p.reset)

			fmt.Printf("\n%s%sGLOBAL FLAGS%s\n\n", p.bold, p.orange, p.reset)
			fmt.Printf("  %s--config%s <file>        Config file; DUPHOUND_* environment variables also apply\n", p.bold, p.reset)
			fmt.Printf("  %s-v, --verbose%s          Enable verbose logging\n", p.bold, p.reset)
			fmt.Printf("  %s-h, --help%s             Show help for any command\n", p.bold, p.reset)
			fmt.Printf("  %s--version%s              Show version\n", p.bold, p.reset)

			fmt.Printf("\n%s%sEXAMPLES%s\n\n", p.bold, p.orange, p.reset)
			fmt.Printf("  %s# Basic scan%s\n", p.gray, p.reset)
			fmt.Printf("  duphound scan ~/Downloads\n\n")
			fmt.Printf("  %s# Looser name matching, skip VCS data%s\n", p.gray, p.reset)
			fmt.Printf("  duphound scan --score=60 --exclude=.git,node_modules ~/src\n\n")
			fmt.Printf("  %s# Export to SQLite%s\n", p.gray, p.reset)
			fmt.Printf("  duphound scan --report=sqlite --output=dupes.db /srv/media\n\n")
			fmt.Printf("  %s# Bash completion%s\n", p.gray, p.reset)
			fmt.Printf("  source <(duphound completion bash)\n\n")
		},
	}
}
