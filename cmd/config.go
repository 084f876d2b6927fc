package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spiffcs/screener/config"
)

// NewCmdConfig creates the config command with subcommands.
func NewCmdConfig() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		Long: `Show or manage configuration.

When run without arguments, shows the current merged configuration.

Subcommands:
  init      Create a minimal config file
  path      Show config file locations
  defaults  Show all default values
  show      Show current merged config (same as bare 'screener config')
  validate  Check the global and local config files`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.OutOrStdout(), outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml, json)")

	cmd.AddCommand(NewCmdConfigInit())
	cmd.AddCommand(NewCmdConfigPath())
	cmd.AddCommand(NewCmdConfigDefaults())
	cmd.AddCommand(NewCmdConfigShow())
	cmd.AddCommand(NewCmdConfigValidate())

	return cmd
}

// NewCmdConfigInit creates the config init subcommand.
func NewCmdConfigInit() *cobra.Command {
	var global, local bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a minimal config file",
		Long: `Create a minimal config file with starter settings.

Use --global to create in ~/.config/screener/config.yaml (applies everywhere)
Use --local to create in ./.screener.yaml (applies only in this directory)
Without flags, you'll be prompted to choose.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd.InOrStdin(), cmd.OutOrStdout(), global, local)
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Create global config file (~/.config/screener/config.yaml)")
	cmd.Flags().BoolVar(&local, "local", false, "Create local config file (./.screener.yaml)")

	return cmd
}

// NewCmdConfigPath creates the config path subcommand.
func NewCmdConfigPath() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file locations",
		Long:  `Show the paths to global and local config files and indicate which exist.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigPath(cmd.OutOrStdout())
		},
	}
}

// NewCmdConfigDefaults creates the config defaults subcommand.
func NewCmdConfigDefaults() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Show all default configuration values",
		Long: `Show a complete configuration with all default values.

This can be redirected to create a config file with all defaults:
  screener config defaults > ~/.config/screener/config.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeConfig(cmd.OutOrStdout(), config.DefaultConfig(), outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml, json)")

	return cmd
}

// NewCmdConfigShow creates the config show subcommand.
func NewCmdConfigShow() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current merged configuration",
		Long:  `Show the current configuration after merging defaults, global, and local configs.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.OutOrStdout(), outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml, json)")

	return cmd
}

// NewCmdConfigValidate creates the config validate subcommand.
func NewCmdConfigValidate() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the config files for errors",
		Long: `Load the global and local config files, merge them, and report the
first invalid value. Exits non-zero when the merged config is invalid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd.OutOrStdout())
		},
	}
}

func runConfigInit(in io.Reader, out io.Writer, global, local bool) error {
	if global && local {
		return fmt.Errorf("cannot specify both --global and --local")
	}

	paths := config.GetConfigPaths()
	var targetPath string
	var location string

	switch {
	case global:
		targetPath = paths.GlobalPath
		location = "global"
	case local:
		targetPath = paths.LocalPath
		location = "local"
	default:
		fmt.Fprintln(out, "Where would you like to create the config file?")
		fmt.Fprintf(out, "  [1] Global (%s) - applies everywhere\n", paths.GlobalPath)
		fmt.Fprintf(out, "  [2] Local (%s) - applies only in this directory\n", paths.LocalPath)
		fmt.Fprint(out, "Choose [1/2]: ")

		reader := bufio.NewReader(in)
		choice, err := reader.ReadString('\n')
		if err != nil && choice == "" {
			return fmt.Errorf("failed to read input: %w", err)
		}

		choice = strings.TrimSpace(choice)
		switch choice {
		case "1":
			targetPath = paths.GlobalPath
			location = "global"
		case "2":
			targetPath = paths.LocalPath
			location = "local"
		default:
			return fmt.Errorf("invalid choice: %s (must be 1 or 2)", choice)
		}
		fmt.Fprintln(out)
	}

	if _, err := os.Stat(targetPath); err == nil {
		return fmt.Errorf("config file already exists: %s\nUse 'screener config show' to view current config", targetPath)
	}

	if err := config.SaveTo(targetPath, config.MinimalConfig()); err != nil {
		return err
	}

	fmt.Fprintf(out, "Created %s config file: %s\n\n", location, targetPath)
	fmt.Fprintln(out, "Edit this file to customize screening behavior.")
	fmt.Fprintln(out, "Run 'screener config defaults' to see all available options.")

	return nil
}

func runConfigPath(out io.Writer) error {
	paths := config.GetConfigPaths()

	fmt.Fprintln(out, "Configuration file locations:")
	fmt.Fprintln(out)

	globalStatus := "not found"
	if paths.GlobalExists {
		globalStatus = "exists"
	}
	fmt.Fprintf(out, "  Global: %s (%s)\n", paths.GlobalPath, globalStatus)

	localStatus := "not found"
	if paths.LocalExists {
		localStatus = "exists"
	}
	fmt.Fprintf(out, "  Local:  %s (%s)\n", paths.LocalPath, localStatus)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Load order: defaults -> global -> local (local overrides global)")

	return nil
}

func runConfigValidate(out io.Writer) error {
	paths := config.GetConfigPaths()
	if !paths.GlobalExists && !paths.LocalExists {
		fmt.Fprintln(out, "No config files found; built-in defaults apply.")
		return nil
	}

	if _, err := config.Load(); err != nil {
		return err
	}

	for _, p := range []struct {
		path   string
		exists bool
	}{
		{paths.GlobalPath, paths.GlobalExists},
		{paths.LocalPath, paths.LocalExists},
	} {
		if p.exists {
			fmt.Fprintf(out, "  ok  %s\n", p.path)
		}
	}
	fmt.Fprintln(out, "Configuration is valid.")
	return nil
}

func runConfigShow(out io.Writer, format string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return writeConfig(out, cfg, format)
}

func writeConfig(out io.Writer, cfg *config.Config, format string) error {
	switch format {
	case "yaml":
		yamlStr, err := cfg.ToYAML()
		if err != nil {
			return err
		}
		fmt.Fprint(out, yamlStr)
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	default:
		return fmt.Errorf("invalid format: %s (must be yaml or json)", format)
	}
	return nil
}
