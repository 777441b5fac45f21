package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/notallowed/internal/model"
)

const configHierarchy = `Configuration hierarchy (highest to lowest priority):
  1. CLI flags
  2. Environment variables (NOTALLOWED_*, e.g. NOTALLOWED_REDIS_ADDR)
  3. Config file (~/.notallowed/config.yaml)
  4. Defaults`

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage notallowed configuration",
		Long: `Manage notallowed configuration files and settings.

` + configHierarchy,
	}

	configCmd.AddCommand(newConfigShowCmd(a), newConfigInitCmd())

	return configCmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  `Display the effective configuration after merging defaults, config file, env vars and flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}

			if configFile := a.v.ConfigFileUsed(); configFile != "" {
				fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
			} else {
				fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
			}

			yamlData, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("error marshaling config: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(yamlData)
			return err
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration file",
		Long:  `Create a default configuration file (default ~/.notallowed/config.yaml).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("error finding home directory: %w", err)
				}
				path = filepath.Join(home, ".notallowed", "config.yaml")
			}

			if err := writeDefaultConfig(path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created default configuration: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "where to write the config file")

	return cmd
}

// writeDefaultConfig writes the defaults as commented YAML; it refuses to
// overwrite an existing file
func writeDefaultConfig(path string) (err error) {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s\nUse 'notallowed config show' to view it, or delete it first to recreate", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	yamlData, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close config file: %w", closeErr)
		}
	}()

	header := "# notallowed configuration file\n#\n"
	for _, line := range strings.Split(configHierarchy, "\n") {
		header += "# " + line + "\n"
	}
	header += "#\n# Backends: embedded (bundled lists), dir (<data_dir>/<category>.txt), redis (<prefix><category> lists)\n\n"

	if _, err := f.WriteString(header); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	if _, err := f.Write(yamlData); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}

	return nil
}
