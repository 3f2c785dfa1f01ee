package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/morozRed/cratemap/internal/config"
)

func RunInit(cmd *cobra.Command, args []string) error {
	force, err := OptionalBoolFlag(cmd, "force", false)
	if err != nil {
		return err
	}

	path := config.FileName
	if configPath, err := OptionalStringFlag(cmd, "config"); err != nil {
		return err
	} else if configPath != "" {
		path = configPath
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to inspect %s: %w", path, err)
	}

	cfg := config.Default()
	if index, err := OptionalStringFlag(cmd, "index"); err != nil {
		return err
	} else if index != "" {
		cfg.Index = index
	}
	if _, err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
