package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultSeparator = ":"

var (
	// Output shaping
	verbose       bool
	brief         bool
	mimeMode      bool
	extensionMode bool
	separator     string

	// Input sources
	filesFrom       string
	recursive       bool
	showHidden      bool
	noIgnore        bool
	interactiveMode bool

	// Behavior
	noDereference   bool
	exitOnError     bool
	debugMode       bool
	copyToClipboard bool

	cfgFile string
)

// version is the application version, set via ldflags.
var version string = "dev"

var rootCmd = &cobra.Command{
	Use:   "ftt [flags] [file ...]",
	Short: "FTT determines file types using filesystem, magic, and language tests.",
	Long: `FTT (File Type Tester) classifies files by running three ordered tests:
filesystem tests (metadata, permissions, extensions), magic tests (content
signatures), and language tests (content patterns). The first test with an
answer wins. Directories are expanded recursively by default.`,
	Version:      version,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig(cmd)
		logger := newLogger(cfg.Debug)
		tester := NewFileTypeTester(cfg, logger)

		var queue []queuedPath
		if cfg.Interactive {
			paths, err := runInteractiveFinder(tester, cfg)
			if err != nil {
				return err
			}
			if paths == nil {
				return nil // user aborted the selection
			}
			for _, p := range paths {
				queue = append(queue, queuedPath{path: p, separator: cfg.Separator})
			}
		} else {
			// The queue is built from the raw argument order so that
			// --files-from expansion sees the separator in effect where the
			// flag appeared, not the final one. The scan starts from the
			// env/config separator; a -F on the command line takes over at
			// its own position.
			baseSeparator := configuredSeparator()
			var err error
			queue, err = buildQueue(os.Args[1:], baseSeparator, os.Stdin)
			if err != nil {
				return err
			}
		}

		if len(queue) == 0 {
			return fmt.Errorf("no files to classify (see --help)")
		}

		if code := runQueue(tester, queue, cfg, logger, os.Stdout, os.Stderr); code != 0 {
			os.Exit(code)
		}
		return nil
	},
}

// runQueue classifies every queued path in order, one line per file. With
// --exit-on-error the first path error goes to the diagnostic stream and
// stops the run with exit code 1; otherwise error lines share stdout with
// normal results and the run continues.
func runQueue(tester *FileTypeTester, queue []queuedPath, cfg Config, logger *slog.Logger, stdout, stderr io.Writer) int {
	var report strings.Builder
	errorLine := color.New(color.FgRed)

	for _, q := range queue {
		for _, entry := range expandQueued(q, cfg, logger) {
			res := tester.Detect(entry.path)
			line := formatLine(entry.path, res, entry.separator, cfg)

			if res.Err != nil {
				if cfg.ExitOnError {
					fmt.Fprintln(stderr, line)
					return 1
				}
				errorLine.Fprintln(stdout, line)
			} else {
				fmt.Fprintln(stdout, line)
			}

			report.WriteString(line)
			report.WriteByte('\n')
		}
	}

	if cfg.Clipboard {
		if err := clipboard.WriteAll(report.String()); err != nil {
			fmt.Fprintf(stderr, "Warning: could not copy report to clipboard: %v\n", err)
		}
	}
	return 0
}

// buildConfig assembles the read-only run configuration from viper, which has
// already merged defaults, config file, FTT_* environment and flags.
func buildConfig(cmd *cobra.Command) Config {
	cfg := Config{
		Verbose:       viper.GetBool("verbose"),
		Brief:         viper.GetBool("brief"),
		MIMEMode:      viper.GetBool("mime"),
		ExtensionMode: viper.GetBool("extension"),
		Separator:     configuredSeparator(),
		ExitOnError:   viper.GetBool("exit_on_error"),
		Debug:         viper.GetBool("debug"),
		Recursive:     viper.GetBool("recursive"),
		ShowHidden:    viper.GetBool("hidden"),
		NoIgnore:      viper.GetBool("no_ignore"),
		Interactive:   viper.GetBool("interactive"),
		Clipboard:     viper.GetBool("clipboard"),
	}
	if cmd.Flags().Changed("separator") {
		cfg.Separator = separator
	}

	// Symlinks are not dereferenced unless FTT_DEREFERENCE asks for it, and
	// an explicit -h always wins over the environment.
	cfg.NoDereference = true
	if viper.GetBool("dereference") {
		cfg.NoDereference = false
	}
	if cmd.Flags().Changed("no-dereference") {
		cfg.NoDereference = noDereference
	}
	return cfg
}

// configuredSeparator resolves the separator from FTT_SEPARATOR and the
// config file, ignoring any -F flag. Flag values are applied where they
// appear in the argument order, not here.
func configuredSeparator() string {
	if s := viper.GetString("separator"); s != "" {
		return s
	}
	return defaultSeparator
}

// newLogger routes internal trace lines to stderr when debugging, and
// nowhere otherwise. Result output never goes through this logger.
func newLogger(debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func init() {
	cobra.OnInitialize(initConfig)

	// -h belongs to --no-dereference, so register the help flag ourselves
	// before cobra claims the shorthand.
	rootCmd.Flags().Bool("help", false, "Show help for ftt")

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "Config file (default is $HOME/.config/ftt/config.toml)")

	// Output shaping
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Append the matching test tier to each result")
	viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
	rootCmd.Flags().BoolVarP(&brief, "brief", "b", false, "Do not prepend filenames to output lines")
	viper.BindPFlag("brief", rootCmd.Flags().Lookup("brief"))
	rootCmd.Flags().BoolVarP(&mimeMode, "mime", "i", false, "Output MIME type strings instead of descriptions")
	viper.BindPFlag("mime", rootCmd.Flags().Lookup("mime"))
	rootCmd.Flags().BoolVar(&extensionMode, "extension", false, "Print a slash-separated list of valid extensions for the file type found")
	viper.BindPFlag("extension", rootCmd.Flags().Lookup("extension"))
	// The separator flag is deliberately not viper-bound: a -F on the
	// command line applies positionally during the raw argument scan, while
	// FTT_SEPARATOR and the config file supply the value in effect before it.
	rootCmd.Flags().StringVarP(&separator, "separator", "F", defaultSeparator, "Use this string as the separator between filename and result")

	// Input sources
	rootCmd.Flags().StringVarP(&filesFrom, "files-from", "f", "", "Read names of files to classify from this namefile (one per line, \"-\" for stdin)")
	viper.BindPFlag("files_from", rootCmd.Flags().Lookup("files-from"))
	rootCmd.Flags().BoolVarP(&recursive, "recursive", "r", true, "Expand directory arguments recursively")
	viper.BindPFlag("recursive", rootCmd.Flags().Lookup("recursive"))
	rootCmd.Flags().BoolVarP(&showHidden, "hidden", "H", false, "Include hidden files when expanding directories")
	viper.BindPFlag("hidden", rootCmd.Flags().Lookup("hidden"))
	rootCmd.Flags().BoolVar(&noIgnore, "no-ignore", false, "Don't respect .gitignore files when expanding directories")
	viper.BindPFlag("no_ignore", rootCmd.Flags().Lookup("no-ignore"))
	rootCmd.Flags().BoolVar(&interactiveMode, "interactive", false, "Pick files to classify with a fuzzy finder")
	viper.BindPFlag("interactive", rootCmd.Flags().Lookup("interactive"))

	// Behavior
	rootCmd.Flags().BoolVarP(&noDereference, "no-dereference", "h", true, "Do not follow symbolic links (default unless FTT_DEREFERENCE is set)")
	rootCmd.Flags().BoolVarP(&exitOnError, "exit-on-error", "E", false, "Exit on the first filesystem error instead of continuing")
	viper.BindPFlag("exit_on_error", rootCmd.Flags().Lookup("exit-on-error"))
	rootCmd.Flags().BoolVarP(&debugMode, "debug", "d", false, "Write internal trace output to stderr")
	viper.BindPFlag("debug", rootCmd.Flags().Lookup("debug"))
	rootCmd.Flags().BoolVarP(&copyToClipboard, "clipboard", "c", false, "Also copy the report to the clipboard")
	viper.BindPFlag("clipboard", rootCmd.Flags().Lookup("clipboard"))
}

// initConfig reads in the optional config file and FTT_* environment
// variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ftt"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("FTT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	// FTT_DEREFERENCE flips the no-dereference default; see buildConfig.
	viper.BindEnv("dereference")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
