package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"cv-generator/internal/config"
	"cv-generator/internal/infrastructure/migration"
	"cv-generator/internal/model"
	infra "cv-generator/pkg/infrastructure"

	"github.com/spf13/cobra"
)

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

func newNormalizeCmd(opts *rootOptions) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "normalize <file|->",
		Short: "Print the canonical form of a CV JSON file",
		Long: `Runs a CV JSON file through the same normalization used on upload and
prints the result. With --strict the raw file must also match the canonical
schema exactly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			if strict {
				var raw map[string]interface{}
				if err := json.Unmarshal(b, &raw); err != nil {
					return fmt.Errorf("parse %s: %w", args[0], err)
				}
				if err := model.ValidateMap(raw); err != nil {
					return err
				}
			}
			cv, err := model.NormalizeJSON(b)
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), cv)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "reject files that are not already canonical")
	return cmd
}

func newSaveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save <file|->",
		Short: "Store a CV under a new slug and print the slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			svc, closeFn, err := opts.service(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()
			key, err := svc.Save(cmd.Context(), b)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <slug>",
		Short: "Print a stored CV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := opts.service(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()
			cv, err := svc.Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), cv)
		},
	}
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "render <slug>",
		Short: "Render a stored CV to HTML or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := opts.service(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()

			var b []byte
			switch format {
			case "html":
				b, err = svc.RenderHTML(cmd.Context(), args[0])
			case "pdf":
				b, err = svc.RenderPDF(cmd.Context(), args[0])
			default:
				return fmt.Errorf("unknown render format %q", format)
			}
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "html", "html or pdf")
	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	return cmd
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the Postgres schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Store.Backend != config.BackendPostgres {
				return fmt.Errorf("migrate needs STORE_BACKEND=postgres, got %q", cfg.Store.Backend)
			}
			pool, err := infra.NewPool(cmd.Context(), cfg.Store.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()
			return migration.RunMigrations(cmd.Context(), pool)
		},
	}
}
