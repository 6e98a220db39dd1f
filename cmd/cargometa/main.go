package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slimboyfat/cargometa/internal/codegen"
	"github.com/slimboyfat/cargometa/internal/config"
	"github.com/slimboyfat/cargometa/internal/manifest"
	"github.com/slimboyfat/cargometa/internal/toml"
	"github.com/slimboyfat/cargometa/internal/utils"
	"github.com/slimboyfat/cargometa/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile      string
	manifestPath string
	verbose      bool
	log          *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cargometa",
	Short: "Read and embed Cargo.toml metadata",
	Long: `Cargometa parses a crate's Cargo.toml and exposes its metadata as
JSON, YAML, or generated Go source.

It locates the manifest by walking up from a starting directory, the way
cargo itself resolves the workspace root.`,
	Version: version.Short(),
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.cargometa/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "", "Explicit Cargo.toml path (skips the upward search)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Generate flags
	generateCmd.Flags().StringP("output", "o", config.DefaultOutputPath, "Output file (.go, .json, .yaml)")
	generateCmd.Flags().String("package", config.DefaultPackageName, "Package name for generated Go files")
	generateCmd.Flags().Bool("force", false, "Overwrite existing output files")
	generateCmd.Flags().Bool("dry-run", false, "Simulate without writing files")

	// Bind flags to viper
	_ = viper.BindPFlag("manifest.path", rootCmd.PersistentFlags().Lookup("manifest"))
	_ = viper.BindPFlag("output.path", generateCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("output.package", generateCmd.Flags().Lookup("package"))
	_ = viper.BindPFlag("output.force", generateCmd.Flags().Lookup("force"))
	_ = viper.BindPFlag("output.dry_run", generateCmd.Flags().Lookup("dry-run"))

	// Add subcommands
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// setup initializes the logger and loads configuration
func setup() (*config.Config, error) {
	logLevel := "info"
	if verbose {
		logLevel = "debug"
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log = utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
	})

	return cfg, nil
}

// resolveManifest returns the Cargo.toml path for the given command args.
// An explicit --manifest flag wins; otherwise the search starts from the
// positional directory argument or the configured directory.
func resolveManifest(cfg *config.Config, args []string) (string, error) {
	if cfg.Manifest.Path != "" {
		return cfg.Manifest.Path, nil
	}

	dir := cfg.Manifest.Dir
	if len(args) > 0 {
		dir = args[0]
	}

	loader := manifest.NewLoader()
	path, err := loader.Find(dir)
	if err != nil {
		return "", err
	}
	return path, nil
}

var extractCmd = &cobra.Command{
	Use:   "extract [dir]",
	Short: "Print manifest metadata as JSON",
	Long:  "Parses the crate manifest and prints the extracted metadata to stdout as JSON.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}

		path, err := resolveManifest(cfg, args)
		if err != nil {
			return err
		}
		log.Debug().Str("path", path).Msg("manifest resolved")

		view, err := manifest.NewLoader().Load(path)
		if err != nil {
			return err
		}

		out, err := codegen.GenerateJSON(view)
		if err != nil {
			return err
		}
		cmd.OutOrStdout().Write(out)
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate [dir]",
	Short: "Write a metadata snapshot file",
	Long: `Parses the crate manifest and writes a snapshot of its metadata.
The output extension selects the format: .go emits Go constants, .json and
.yaml emit the serialized snapshot.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}

		path, err := resolveManifest(cfg, args)
		if err != nil {
			return err
		}

		view, err := manifest.NewLoader().Load(path)
		if err != nil {
			return err
		}

		ext := filepath.Ext(cfg.Output.Path)
		data, err := codegen.Generate(view, ext, cfg.Output.Package)
		if err != nil {
			return err
		}

		writer := codegen.NewWriter(codegen.WriterOptions{
			Force:  cfg.Output.Force,
			DryRun: cfg.Output.DryRun,
		})
		if err := writer.Write(cfg.Output.Path, data); err != nil {
			return err
		}

		if cfg.Output.DryRun {
			log.Info().Str("output", cfg.Output.Path).Msg("dry run, nothing written")
		} else {
			log.Info().Str("output", cfg.Output.Path).Str("crate", view.Name).Msg("snapshot written")
		}
		return nil
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <path> [dir]",
	Short: "Print a single manifest value",
	Long: `Looks up a dotted path in the manifest and prints the value as JSON.
Integer segments index into arrays:

  cargometa lookup package.name
  cargometa lookup package.keywords.2`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}

		keyPath := args[0]
		path, err := resolveManifest(cfg, args[1:])
		if err != nil {
			return err
		}

		doc, err := manifest.NewLoader().LoadDocument(path)
		if err != nil {
			return err
		}

		value, ok := toml.Lookup(doc, keyPath)
		if !ok {
			return fmt.Errorf("key not found: %s", keyPath)
		}

		// Scalars print raw, composites as JSON
		switch v := value.(type) {
		case toml.String:
			fmt.Fprintln(cmd.OutOrStdout(), string(v))
		case toml.Datetime:
			fmt.Fprintln(cmd.OutOrStdout(), string(v))
		default:
			out, err := json.MarshalIndent(toml.ToInterface(value), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}
