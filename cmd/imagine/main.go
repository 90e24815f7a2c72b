package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"imagine-cli/internal/app"
	"imagine-cli/internal/orchestrator"
	"imagine-cli/pkg/models"
)

// Build-time variables injected via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	date      = "unknown"
	goVersion = runtime.Version()
)

var rootCmd = &cobra.Command{
	Use:   "imagine",
	Short: "A terminal form for assembling /imagine prompt commands",
	Long: `Imagine assembles "/imagine prompt:" commands from free text, suffix tags,
an algorithm, an aspect ratio, a stylize value, an optional seed and a video flag.

Without a subcommand it opens a full-screen form. Every change to the command is
copied to the clipboard while "copy on change" is enabled. The form's settings are
saved on exit and restored on the next run; the prompt text itself is not saved.

Use 'imagine render' to build a command without the form.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
			versionCmd.Run(cmd, args)
			return nil
		}

		opts, err := optionsFromFlags(cmd)
		if err != nil {
			return err
		}
		return app.RunForm(opts)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print detailed version information including build version, commit, date, and platform details.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("imagine version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		fmt.Printf("  go version: %s\n", goVersion)
		fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

var renderCmd = &cobra.Command{
	Use:   "render [prompt]",
	Short: "Render a command from the saved settings without the form",
	Long: `Render loads the saved settings, applies any flags and writes the resulting
command to the target (clipboard by default). The saved settings are only
updated when --save is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromFlags(cmd)
		if err != nil {
			return err
		}

		request, err := buildRequestFromFlags(cmd, args)
		if err != nil {
			return err
		}

		return app.Render(opts, request)
	},
}

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Fill in every field through a questionnaire",
	Long:  "Ask for every field line by line, copy the resulting command and save the settings.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromFlags(cmd)
		if err != nil {
			return err
		}

		numberSelect, _ := cmd.Flags().GetBool("numbers")
		return app.Ask(opts, numberSelect)
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromFlags(cmd)
		if err != nil {
			return err
		}
		return app.Show(opts)
	},
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the location of the settings file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromFlags(cmd)
		if err != nil {
			return err
		}
		return app.Path(opts)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromFlags(cmd)
		if err != nil {
			return err
		}
		return app.Reset(opts)
	},
}

var suffixCmd = &cobra.Command{
	Use:   "suffix",
	Short: "Edit the saved suffix tags",
}

var suffixListCmd = &cobra.Command{
	Use:   "list",
	Short: "List suffixes with their indexes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromFlags(cmd)
		if err != nil {
			return err
		}
		return app.ListSuffixes(opts)
	},
}

var suffixAddCmd = &cobra.Command{
	Use:   "add <label>...",
	Short: "Append enabled suffixes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromFlags(cmd)
		if err != nil {
			return err
		}
		return app.AddSuffixes(opts, args)
	},
}

var suffixRemoveCmd = &cobra.Command{
	Use:     "rm <index>",
	Aliases: []string{"remove"},
	Short:   "Remove the suffix at index",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromFlags(cmd)
		if err != nil {
			return err
		}
		position, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		return app.RemoveSuffix(opts, position)
	},
}

var suffixToggleCmd = &cobra.Command{
	Use:   "toggle <index>",
	Short: "Enable or disable the suffix at index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromFlags(cmd)
		if err != nil {
			return err
		}
		position, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		return app.ToggleSuffix(opts, position)
	},
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(suffixCmd)
	suffixCmd.AddCommand(suffixListCmd, suffixAddCmd, suffixRemoveCmd, suffixToggleCmd)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default ~/.config/imagine/config.toml)")
	rootCmd.PersistentFlags().String("state", "", "settings file path (default <data dir>/midjourney_prompt/promt.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "print version information")

	addRenderFlags(renderCmd)

	askCmd.Flags().BoolP("numbers", "n", false, "enable number key selection for lists")
}

// addRenderFlags registers the override flags of the render command
func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("suffix", []string{}, "append an enabled suffix (repeatable)")
	cmd.Flags().Bool("no-suffixes", false, "drop the saved suffixes before appending --suffix values")
	cmd.Flags().StringP("algorithm", "a", "", "algorithm (v3, test, testp)")
	cmd.Flags().String("ar", "", "aspect ratio W:H (width 1-21, height 1-10)")
	cmd.Flags().Int("stylize", models.DefaultStylize, "stylize strength (625-60000)")
	cmd.Flags().Uint32("seed", 0, "fixed seed, enables --sameseed")
	cmd.Flags().Bool("no-seed", false, "disable the saved seed")
	cmd.Flags().Bool("video", false, "add --video")
	cmd.Flags().StringP("target", "t", "", "output target (clipboard, stdout, file:/path)")
	cmd.Flags().BoolP("save", "s", false, "save the overridden settings")
}

// optionsFromFlags reads the persistent flags shared by every command
func optionsFromFlags(cmd *cobra.Command) (app.Options, error) {
	var opts app.Options
	var err error

	if opts.ConfigPath, err = cmd.Flags().GetString("config"); err != nil {
		return opts, fmt.Errorf("invalid config flag: %w", err)
	}
	if opts.StatePath, err = cmd.Flags().GetString("state"); err != nil {
		return opts, fmt.Errorf("invalid state flag: %w", err)
	}
	if opts.LogLevel, err = cmd.Flags().GetString("log-level"); err != nil {
		return opts, fmt.Errorf("invalid log-level flag: %w", err)
	}

	return opts, nil
}

// buildRequestFromFlags constructs a RenderRequest from command flags and arguments.
// Override fields stay nil unless their flag was given.
func buildRequestFromFlags(cmd *cobra.Command, args []string) (*models.RenderRequest, error) {
	request := models.NewRenderRequest()

	// Get prompt text from positional argument
	if len(args) > 0 {
		request.Text = strings.TrimSpace(args[0])
	}

	var err error

	if request.Suffixes, err = cmd.Flags().GetStringSlice("suffix"); err != nil {
		return nil, fmt.Errorf("invalid suffix flag: %w", err)
	}

	if request.NoSuffixes, err = cmd.Flags().GetBool("no-suffixes"); err != nil {
		return nil, fmt.Errorf("invalid no-suffixes flag: %w", err)
	}

	if cmd.Flags().Changed("algorithm") {
		value, _ := cmd.Flags().GetString("algorithm")
		algo, err := models.ParseAlgorithm(value)
		if err != nil {
			return nil, orchestrator.NewValidationError("algorithm", value, err.Error())
		}
		request.Algorithm = &algo
	}

	if cmd.Flags().Changed("ar") {
		value, _ := cmd.Flags().GetString("ar")
		aspect, err := models.ParseAspect(value)
		if err != nil {
			return nil, orchestrator.NewValidationError("aspect", value, err.Error())
		}
		request.Aspect = &aspect
	}

	if cmd.Flags().Changed("stylize") {
		stylize, err := cmd.Flags().GetInt("stylize")
		if err != nil {
			return nil, fmt.Errorf("invalid stylize flag: %w", err)
		}
		request.Stylize = &stylize
	}

	if cmd.Flags().Changed("seed") {
		seed, err := cmd.Flags().GetUint32("seed")
		if err != nil {
			return nil, fmt.Errorf("invalid seed flag: %w", err)
		}
		request.Seed = &seed
	}

	if request.NoSeed, err = cmd.Flags().GetBool("no-seed"); err != nil {
		return nil, fmt.Errorf("invalid no-seed flag: %w", err)
	}
	if request.NoSeed && request.Seed != nil {
		return nil, orchestrator.NewValidationError("seed", *request.Seed, "cannot combine --seed with --no-seed")
	}

	if cmd.Flags().Changed("video") {
		video, err := cmd.Flags().GetBool("video")
		if err != nil {
			return nil, fmt.Errorf("invalid video flag: %w", err)
		}
		request.Video = &video
	}

	if request.Target, err = cmd.Flags().GetString("target"); err != nil {
		return nil, fmt.Errorf("invalid target flag: %w", err)
	}

	if request.Save, err = cmd.Flags().GetBool("save"); err != nil {
		return nil, fmt.Errorf("invalid save flag: %w", err)
	}

	return request, nil
}

// parseIndex reads a 1-based suffix index
func parseIndex(arg string) (int, error) {
	position, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, orchestrator.NewValidationError("suffix_index", arg, "must be a number")
	}
	return position, nil
}

func main() {
	// Disable usage on error to show only our custom error messages
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
