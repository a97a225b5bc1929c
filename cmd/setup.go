package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/desertthunder/tunes/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the commented example config to --path or the XDG config dir.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if path == "" {
		p, err := shared.UserConfigPath()
		if err != nil {
			return fmt.Errorf("failed to resolve config path: %w", err)
		}
		path = p
	}

	if err := shared.CreateConfigFile(path); err != nil {
		if errors.Is(err, os.ErrExist) {
			r.logger.Warn("config file already exists, leaving it untouched", "path", path)
			return nil
		}
		return err
	}

	r.logger.Info("config file created", "path", path)
	return r.writePlain("✓ Config written to %s\n", path)
}
