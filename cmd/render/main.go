package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"pz-icon-renderer/internal/batch"
	"pz-icon-renderer/internal/config"
	"pz-icon-renderer/internal/log"
	"pz-icon-renderer/internal/manifest"
)

var (
	configFile  string
	mediaDir    string
	manifestArg string
	outputDir   string
	presetsFile string
	workers     int
	verbosity   int
	quiet       bool
)

var rootCmd = &cobra.Command{
	Use:   "render",
	Short: "Render Project Zomboid icon sprites",
	Long: `Render 2D icon sprites of vehicles and world models from the game's media folder.

Extra settings follow the subcommand as key=value tokens:
  is_single=true|false  render_engine=CYCLES  dim=N  dim_x=N  dim_y=N
  lens=N  cam=N  preset=med-0  vehicles=A,B / models=A,B  seed=N  format=png|webp`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch {
		case quiet:
			log.SetLevel(log.Notice)
		case verbosity > 0:
			log.SetLevel(log.Debug)
		}
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&configFile, "config", "", "Path to config.json file")
	f.StringVar(&mediaDir, "media", "", "Path to the game's media directory (default: auto-detect)")
	f.StringVar(&manifestArg, "manifest", "", "Path to the entry manifest (default: vehicle_data.json / model_data.json)")
	f.StringVarP(&outputDir, "output", "o", "", "Output directory (default: output)")
	f.StringVar(&presetsFile, "presets", "", "YAML file with extra presets")
	f.IntVarP(&workers, "workers", "w", 0, "Number of worker goroutines (default: NumCPU)")
	f.CountVarP(&verbosity, "verbose", "v", "Log debug output")
	f.BoolVarP(&quiet, "quiet", "q", false, "Only log progress, warnings and errors")

	for _, kind := range []config.Kind{config.Vehicles, config.Models} {
		rootCmd.AddCommand(&cobra.Command{
			Use:   string(kind) + " [key=value ...]",
			Short: "Render every " + string(kind[:len(kind)-1]) + " entry of the manifest",
			Args:  cobra.ArbitraryArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd.Context(), kind, args)
			},
		})
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, kind config.Kind, tokens []string) error {
	// Load config
	cfg := config.Default(kind)
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile, kind); err != nil {
			return err
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		MediaDir:    mediaDir,
		Manifest:    manifestArg,
		OutputDir:   outputDir,
		PresetsFile: presetsFile,
		Workers:     workers,
	})

	presets := config.DefaultPresets()
	if cfg.PresetsFile != "" {
		extra, err := config.LoadPresets(cfg.PresetsFile)
		if err != nil {
			return err
		}
		presets = presets.Merge(extra)
	}
	if err := cfg.ApplyArgs(tokens, presets); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	m, err := manifest.Load(cfg.Manifest)
	if err != nil {
		return err
	}
	items := m.Select(cfg.Models)
	if len(items) == 0 {
		fmt.Println("Nothing to render.")
		return nil
	}

	fmt.Printf("Project Zomboid icon renderer: %s\n", kind)
	fmt.Printf("Entries: %d, Workers: %d, Engine: %s, %dx%d\n", len(items), cfg.Workers, cfg.Engine, cfg.DimX, cfg.DimY)
	fmt.Printf("Media: %s\n", cfg.MediaDir)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	bcfg := batch.NewConfig(cfg)
	results := batch.Run(ctx, bcfg, items)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success, skipped, failed := batch.Summary(results)
	fmt.Printf("Rendered: %d/%d (skipped %d)\n", success, len(items), skipped)
	fmt.Printf("Textures: %d loaded, %d directories indexed\n", bcfg.Textures.Len(), bcfg.Index.Len())

	if failed > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		shown := 0
		for _, r := range results {
			if r.Skipped || r.Error == "" {
				continue
			}
			if shown == 20 {
				break
			}
			fmt.Printf("  %s: %s\n", r.ID, r.Error)
			shown++
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return err
	}
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		return errors.Errorf("%d entries failed", failed)
	}
	return nil
}
