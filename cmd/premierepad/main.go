package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"premierepad/internal/asset"
	"premierepad/internal/engineconfig"
	"premierepad/internal/env"
	"premierepad/internal/fonts"
)

// fetchTimeout bounds the info command's remote fetch.
const fetchTimeout = 30 * time.Second

func main() {
	var (
		flags      engineconfig.EnginePrefs
		configPath string
	)
	cmd := &cobra.Command{
		Use:   "premierepad",
		Short: "PremierePad product page with a scroll-driven 3D macropad",
		Long: `premierepad - PremierePad product page viewer

Scroll the page to tilt, lock and shrink the macropad model.

Controls:
  Wheel       - Scroll the page
  Nav links   - Jump to a section
  1-9         - Jump to a section
  Right drag  - Pan the camera (free spin only)
  Home        - Reset the camera
  R           - Retry a failed model load
  F3          - Toggle FPS and pose overlay
  F12         - Save a WebP snapshot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := resolvePrefs(configPath, flags)
			if err != nil {
				return err
			}
			return run(cmd.Context(), prefs)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.ModelPath, "model", "", "Model file or http(s) URL (.glb, .gltf, .obj)")
	f.StringVar(&flags.LayoutPath, "layout", "", "Page layout YAML")
	f.StringVar(&flags.CSSPath, "css", "", "Page stylesheet")
	f.StringVar(&flags.StreamAddr, "stream", "", "Serve the live pose stream on this address (e.g. :8090)")
	f.IntVar(&flags.FPS, "fps", 0, "Target FPS")
	f.StringVar(&configPath, "config", engineconfig.EngineConfigPath, "Viewer preferences JSON")

	infoCmd := &cobra.Command{
		Use:   "info <model.glb|model.gltf|url>",
		Short: "Fetch and validate a model without opening a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.Context(), args[0])
		},
	}
	fontCmd := &cobra.Command{
		Use:   "font <family>",
		Short: "Install a Google Fonts family into assets/fonts for the page text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := fonts.NewCatalog().Install(cmd.Context(), args[0], fonts.BaseDirs()[0])
			if err != nil {
				return err
			}
			fmt.Printf("Installed %s\n", path)
			return nil
		},
	}
	cmd.AddCommand(infoCmd, fontCmd)

	if err := fang.Execute(context.Background(), cmd); err != nil {
		os.Exit(1)
	}
}

// resolvePrefs layers config file, .env / environment and flags, later wins.
func resolvePrefs(configPath string, flags engineconfig.EnginePrefs) (engineconfig.EnginePrefs, error) {
	if _, err := env.Load(".env"); err != nil {
		return engineconfig.EnginePrefs{}, fmt.Errorf("load .env: %w", err)
	}
	prefs, err := engineconfig.Load(configPath)
	if err != nil {
		return prefs, err
	}
	if prefs, err = engineconfig.Merge(prefs, engineconfig.FromEnv()); err != nil {
		return prefs, err
	}
	return engineconfig.Merge(prefs, flags)
}

func runInfo(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	res, err := asset.Fetch(ctx, path)
	if err != nil {
		return err
	}
	fmt.Printf("Model: %s\n", res.Path)
	fmt.Printf("Size:  %d bytes\n", res.Size)
	return nil
}
