package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scentquiz/internal/adapters/catalogfile"
	"scentquiz/internal/adapters/editor"
	"scentquiz/internal/config"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect or edit the perfume catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the perfumes in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := catalogfile.Open(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		catalog, err := src.Load(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, item := range catalog.Items() {
			if item.Notes == "" {
				fmt.Fprintln(out, item.Ref())
				continue
			}
			fmt.Fprintf(out, "%s  [%s]\n", item.Ref(), item.Notes)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d perfumes from %s\n", catalog.Len(), src.Name())
		return nil
	},
}

var catalogEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the catalog file in $EDITOR",
	Long: `Open the catalog file in $VISUAL or $EDITOR and check it still loads.

Without catalog.path a copy of the sample catalog is written to the config
directory first; point catalog.path at it to use your edits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Catalog.Path
		if path == "" {
			path = filepath.Join(config.ConfigDir(), "catalog.csv")
			created, err := seedCatalog(path)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote the sample catalog to %s\nSet catalog.path (or SCENTQUIZ_CATALOG_PATH) to use it.\n", path)
			}
		}

		if err := editor.NewOpener().OpenFile(path); err != nil {
			return err
		}

		src, err := catalogfile.Open(path)
		if err != nil {
			return err
		}
		catalog, err := src.Load(cmd.Context())
		if err != nil {
			logger.Warn("edited catalog does not load", zap.String("path", path), zap.Error(err))
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d perfumes\n", path, catalog.Len())
		return nil
	},
}

// seedCatalog writes the sample catalog to path unless a file is already there
func seedCatalog(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, catalogfile.DefaultBytes(), 0o644); err != nil {
		return false, fmt.Errorf("write sample catalog: %w", err)
	}
	return true, nil
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogEditCmd)
}
