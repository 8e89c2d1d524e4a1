package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/seamless/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	cmd.AddCommand(newConfigValidateCmd())
	cmd.AddCommand(newConfigPrintCmd())
	cmd.AddCommand(newConfigExplainCmd())
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the config file for errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.File == "" {
				infoColor.Fprintln(out, "No config file found, defaults are in use")
				return nil
			}
			successColor.Fprintf(out, "✓ %s is valid\n", res.File)
			return nil
		},
	}
}

func newConfigPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := loadConfig()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(res.Config)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "explain <path>",
		Short:     "Show a setting's effective value and where it was set",
		Example:   "  seamless config explain log.level",
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.Paths(),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := loadConfig()
			if err != nil {
				return err
			}
			value, src, err := config.Explain(res, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if wantJSON() {
				return printJSON(out, map[string]any{
					"path":   args[0],
					"value":  value,
					"source": describeSource(src),
				})
			}
			keyColor.Fprintf(out, "%s: ", args[0])
			fmt.Fprintf(out, "%v\n", value)
			infoColor.Fprintf(out, "  from %s\n", describeSource(src))
			return nil
		},
	}
}

func describeSource(src config.Source) string {
	if src.Kind == config.SourceFile {
		return fmt.Sprintf("%s:%d:%d", src.File, src.Line, src.Column)
	}
	return string(src.Kind)
}
