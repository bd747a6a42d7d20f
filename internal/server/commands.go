package server

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"legislativo/internal/dashboard"
)

// Commands returns the CLI subcommands added to the application
func (s *Server) Commands() []*cobra.Command {
	return []*cobra.Command{s.buildCommand(), s.inspectCommand()}
}

func (s *Server) buildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Load the data resources and write the static dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Rebuild(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dashboard written to %s\n", s.cfg.OutputDir)
			return nil
		},
	}
}

func (s *Server) inspectCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Load the data resources and print the dashboard view model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unsupported format %q (expected json or yaml)", format)
			}
			if err := s.Build(cmd.Context()); err != nil {
				return err
			}
			view, err := s.View()
			if err != nil {
				return err
			}
			return writeView(cmd.OutOrStdout(), view, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	return cmd
}

func writeView(w io.Writer, view *dashboard.View, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return fmt.Errorf("failed to encode view: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("failed to encode view: %w", err)
	}
	return nil
}
