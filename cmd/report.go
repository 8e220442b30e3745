package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/pathfinder/internal/report"
)

// Report formats.
const (
	FormatConsole = "console"
	FormatText    = "text"
	FormatJSON    = "json"
	FormatPDF     = "pdf"
)

var reportCmd = &cobra.Command{
	Use:   "report <export.json>",
	Short: "Render a saved JSON export as text, json, pdf or a console summary",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := newLogger()
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}

		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		data, err := renderExport(cmd.Context(), args[0], format, config, time.Now())
		if err != nil {
			logger.Fatal("rendering the export", zap.String("path", args[0]), zap.Error(err))
		}

		if output == "" {
			if format == FormatPDF {
				output = filepath.Join(config.Report.OutputDir, report.PDFFileName)
			} else {
				writeTo(os.Stdout, data)
				return
			}
		}

		if err := os.WriteFile(output, data, 0o644); err != nil {
			logger.Fatal("writing the report", zap.String("filename", output), zap.Error(err))
		}
		logger.Info("report saved", zap.String("filename", output), zap.Int("bytes", len(data)))
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("format", FormatText, "output format: console, text, json or pdf")
	reportCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
}

// renderExport reads an export and renders it in the requested format.
func renderExport(ctx context.Context, path, format string, config *Config, now time.Time) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	export, err := report.ParseExport(raw)
	if err != nil {
		return nil, err
	}
	result := export.Result()

	switch format {
	case FormatConsole:
		return []byte(report.Console(result, viper.GetBool("no-color"))), nil
	case FormatText:
		return []byte(report.Text(result, now)), nil
	case FormatJSON:
		return report.NewExport(result, now).Marshal()
	case FormatPDF:
		chromePath, err := report.DetectPDF(config.Report.PDF.ChromePath)
		if err != nil {
			return nil, err
		}
		return report.PDF(ctx, result, now, report.PDFOptions{
			ChromePath: chromePath,
			Timeout:    config.Report.PDF.Timeout,
		})
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func writeTo(w io.Writer, data []byte) {
	_, _ = w.Write(data)
}
