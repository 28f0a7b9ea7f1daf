package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"locdb/internal/config"
	"locdb/internal/export"
	"locdb/internal/project"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "locdb",
		Short: "Game localization database compiler",
		Long: `Compiles per-language text tables and subtitle scene definitions
(GOAL or JSON sources) into a single queryable database consumed by the
asset build pipeline.`,
	}

	rootCmd.AddCommand(compileTextCmd())
	rootCmd.AddCommand(compileSubtitlesCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func compileTextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile-text [manifest]",
		Short: "Compile a text project into a JSON dump",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			manifest := ""
			if len(args) > 0 {
				manifest = args[0]
			}
			return runCompileText(manifest, output)
		},
	}
	cmd.Flags().String("output", "", "Output path (default <output-dir>/game_text.json)")
	return cmd
}

func compileSubtitlesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile-subtitles [manifest]",
		Short: "Compile a subtitle project into a JSON dump",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			groups, _ := cmd.Flags().GetString("groups")
			manifest := ""
			if len(args) > 0 {
				manifest = args[0]
			}
			return runCompileSubtitles(manifest, groups, output)
		},
	}
	cmd.Flags().String("output", "", "Output path (default <output-dir>/game_subtitles.json)")
	cmd.Flags().String("groups", "", "Group asset file (default from config)")
	return cmd
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Compile the configured projects and export them to PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport()
		},
	}
}

// runCompileText handles the `compile-text` command.
func runCompileText(manifest, output string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	if manifest == "" {
		manifest = cfg.TextProject
	}
	if manifest == "" {
		return fmt.Errorf("no text project manifest given or configured")
	}
	if output == "" {
		output = filepath.Join(cfg.OutputDir, "game_text.json")
	}

	db, err := project.LoadTextProject(ctx, manifest, cfg.WorkerCount)
	if err != nil {
		return fmt.Errorf("compile text project: %w", err)
	}

	if err := writeTextDump(db, output); err != nil {
		return err
	}
	log.Info().Str("output", output).Msg("Text compilation complete")
	return nil
}

// runCompileSubtitles handles the `compile-subtitles` command.
func runCompileSubtitles(manifest, groupAssetFile, output string) error {
	cfg := config.Load()
	if manifest == "" {
		manifest = cfg.SubtitleProject
	}
	if manifest == "" {
		return fmt.Errorf("no subtitle project manifest given or configured")
	}
	if groupAssetFile == "" {
		groupAssetFile = cfg.GroupAssetFile
	}
	if output == "" {
		output = filepath.Join(cfg.OutputDir, "game_subtitles.json")
	}

	db, err := project.LoadSubtitleProject(manifest, groupAssetFile)
	if err != nil {
		return fmt.Errorf("compile subtitle project: %w", err)
	}

	if err := writeSubtitleDump(db, output); err != nil {
		return err
	}
	log.Info().Str("output", output).Msg("Subtitle compilation complete")
	return nil
}

// runExport handles the `export` command.
func runExport() error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	if cfg.TextProject == "" && cfg.SubtitleProject == "" {
		return fmt.Errorf("no projects configured to export")
	}

	pool, err := export.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	exporter := export.NewExporter(pool)
	if err := exporter.EnsureSchema(ctx); err != nil {
		return err
	}

	if cfg.TextProject != "" {
		textDB, err := project.LoadTextProject(ctx, cfg.TextProject, cfg.WorkerCount)
		if err != nil {
			return fmt.Errorf("compile text project: %w", err)
		}
		if err := exporter.ExportText(ctx, textDB); err != nil {
			return err
		}
	}

	if cfg.SubtitleProject != "" {
		subDB, err := project.LoadSubtitleProject(cfg.SubtitleProject, cfg.GroupAssetFile)
		if err != nil {
			return fmt.Errorf("compile subtitle project: %w", err)
		}
		if err := exporter.ExportSubtitles(ctx, subDB); err != nil {
			return err
		}
	}

	log.Info().Msg("Export complete")
	return nil
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}
