package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/hanzi/configs"
	"github.com/Aman-CERP/hanzi/internal/config"
	herrors "github.com/Aman-CERP/hanzi/internal/errors"
	"github.com/Aman-CERP/hanzi/internal/output"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize configuration",
		Long: `Configuration is read from, in increasing precedence:

  1. built-in defaults
  2. the user config ($XDG_CONFIG_HOME/hanzi/config.yaml)
  3. the project config (.hanzi.yaml in the working directory)
  4. HANZI_* environment variables
  5. command-line flags`,
	}

	cmd.AddCommand(
		newConfigShowCmd(opts),
		newConfigPathCmd(),
		newConfigInitCmd(),
		newConfigRestoreCmd(),
	)
	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if jsonOutput {
				return writeJSON(cmd, opts.cfg)
			}
			data, err := yaml.Marshal(opts.cfg)
			if err != nil {
				return herrors.InternalError("marshal config", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file locations",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			skipConfigAnnotation: "true",
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return herrors.IOError("resolve working directory", err)
			}

			w := cmd.OutOrStdout()
			user := config.GetUserConfigPath()
			fmt.Fprintf(w, "user:    %s%s\n", user, missingMarker(config.UserConfigExists()))
			if project := config.ProjectConfigPath(wd); project != "" {
				fmt.Fprintf(w, "project: %s\n", project)
			} else {
				fmt.Fprintf(w, "project: %s (not found)\n", filepath.Join(wd, config.ProjectConfigYAML))
			}
			return nil
		},
	}
}

func missingMarker(exists bool) string {
	if exists {
		return ""
	}
	return " (not found)"
}

func newConfigInitCmd() *cobra.Command {
	var (
		project bool
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented configuration template",
		Long: `Write the configuration template to the user config path, or with
--project to .hanzi.yaml in the working directory. An existing file is only
replaced with --force, and is backed up first.`,
		Args: cobra.NoArgs,
		Annotations: map[string]string{
			skipConfigAnnotation: "true",
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.GetUserConfigPath()
			if project {
				wd, err := os.Getwd()
				if err != nil {
					return herrors.IOError("resolve working directory", err)
				}
				path = filepath.Join(wd, config.ProjectConfigYAML)
			}

			out := output.New(cmd.OutOrStdout())
			if _, err := os.Stat(path); err == nil {
				if !force {
					return herrors.New(herrors.ErrCodeInvalidInput, "config already exists: "+path, nil).
						WithSuggestion("use --force to overwrite (a backup is kept)")
				}
				backup, err := config.BackupFile(path)
				if err != nil {
					return err
				}
				out.Statusf("→", "Backed up existing config to %s", backup)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return herrors.IOError("create config directory", err).WithDetail("path", path)
			}
			if err := os.WriteFile(path, []byte(configs.ConfigTemplate), 0o644); err != nil {
				return herrors.IOError("write config file", err).WithDetail("path", path)
			}

			out.Successf("Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&project, "project", false, "Write .hanzi.yaml in the working directory")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")
	return cmd
}

func newConfigRestoreCmd() *cobra.Command {
	var project bool

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore the newest configuration backup",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			skipConfigAnnotation: "true",
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.GetUserConfigPath()
			if project {
				wd, err := os.Getwd()
				if err != nil {
					return herrors.IOError("resolve working directory", err)
				}
				path = filepath.Join(wd, config.ProjectConfigYAML)
			}

			backups, err := config.ListBackups(path)
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				return herrors.New(herrors.ErrCodeConfigNotFound, "no config backups found for "+path, nil).
					WithSuggestion("backups are written by 'hanzi config init --force'")
			}
			if err := config.RestoreFile(path, backups[0]); err != nil {
				return err
			}

			output.New(cmd.OutOrStdout()).Successf("Restored %s from %s", path, backups[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&project, "project", false, "Restore .hanzi.yaml in the working directory")
	return cmd
}
