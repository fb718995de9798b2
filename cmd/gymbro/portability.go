package gymbro

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/gymbro/internal/compress"
	"github.com/saadjs/gymbro/internal/service"
)

var (
	exportOut string
	importIn  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export local data as JSON (zstd-compressed when --out ends in .zst)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(exportOut) == "" {
			return fmt.Errorf("--out is required")
		}
		return withSession(cmd, func(e *env) error {
			raw, err := service.MarshalExport(service.Export(e.ctx, e.store, time.Now()))
			if err != nil {
				return err
			}
			if compress.IsCompressedPath(exportOut) {
				codec, err := compress.NewZstdCodec()
				if err != nil {
					return err
				}
				if raw, err = codec.Compress(raw); err != nil {
					return fmt.Errorf("compress export: %w", err)
				}
			}
			if err := os.WriteFile(exportOut, raw, 0o600); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported data to %s\n", exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a JSON export, replacing the collections it contains",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--in is required")
		}
		raw, err := os.ReadFile(importIn)
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		if compress.LooksCompressed(raw) {
			codec, err := compress.NewZstdCodec()
			if err != nil {
				return err
			}
			if raw, err = codec.Decompress(raw); err != nil {
				return err
			}
		}
		return withSession(cmd, func(e *env) error {
			summary, err := service.Import(e.ctx, e.store, raw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Import report: workouts=%d nutrition_logs=%d body_metrics=%d water_logs=%d\n",
				summary.Workouts, summary.NutritionLogs, summary.BodyMetrics, summary.WaterLogs)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path (.json or .json.zst)")
	importCmd.Flags().StringVar(&importIn, "in", "", "Input file path")
}
