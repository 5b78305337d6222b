package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"cv-generator/internal/config"
	wiring "cv-generator/internal/infrastructure"
	"cv-generator/internal/usecase"
	infra "cv-generator/pkg/infrastructure"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type rootOptions struct {
	output   string
	storeDir string
	backend  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "cvctl",
		Short:         "Inspect, import and publish CV documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "json", "output format for documents (json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.backend, "backend", "", "store backend (overrides STORE_BACKEND)")
	cmd.PersistentFlags().StringVar(&opts.storeDir, "store-dir", "", "filesystem store directory (overrides STORE_DIR)")

	cmd.AddCommand(
		newNormalizeCmd(opts),
		newSaveCmd(opts),
		newGetCmd(opts),
		newRenderCmd(opts),
		newMigrateCmd(opts),
	)
	return cmd
}

// loadConfig reads the environment configuration and applies flag overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.backend != "" {
		os.Setenv("STORE_BACKEND", o.backend)
	}
	if o.storeDir != "" {
		os.Setenv("STORE_DIR", o.storeDir)
	}
	return config.Load()
}

// service opens the configured store and returns a Service over it. The
// CLI has no editing sessions, so drafts stay in memory.
func (o *rootOptions) service(ctx context.Context, errOut io.Writer) (*usecase.Service, func(), error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := cfg.Logging.NewLogger(errOut)
	store, closeFn, err := wiring.OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		return nil, nil, err
	}
	renderer := infra.NewChromedpRenderer(cfg.Render.ChromePath)
	return usecase.NewService(store, nil, renderer, logger), closeFn, nil
}

func (o *rootOptions) write(w io.Writer, v interface{}) error {
	switch o.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}
	return fmt.Errorf("unknown output format %q", o.output)
}
