package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/codetaro/SigfoxDecoder/internal/config"
	"github.com/codetaro/SigfoxDecoder/pkg/sigfox"
)

var (
	rootCmd = &cobra.Command{
		Use:   "sigfox-decode [hex]",
		Short: "Decode Sigfox GPS tracker payloads",
		Long:  "sigfox-decode decodes Sigfox GPS tracker uplink payloads using the sigfox library.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			log := cfg.Logging.NewLogger()
			opts := sigfox.Options{
				DownlinkData: cfg.Decoder.DownlinkData,
				Logger:       log,
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				return runInteractive(ctx, log, cmd.InOrStdin(), out, opts, cfg.Output.Format)
			}
			return runDecode(ctx, out, opts, cfg.Output.Format, args[0])
		},
	}

	configPath string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a YAML config file")
	flags.String("downlink-data", "payload", "downlink ack data source: payload or sequence")
	flags.String("output", "json", "output format: json or yaml")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format: text or json")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

func runInteractive(ctx context.Context, log logrus.FieldLogger, in io.Reader, out io.Writer, opts sigfox.Options, format string) error {
	scanner := bufio.NewScanner(in)
	log.Info("sigfox decode mode. Paste a hex payload and press Enter (Ctrl+D to exit).")
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runDecode(ctx, out, opts, format, line); err != nil {
			log.WithError(err).Error("failed to decode payload")
		}
	}
	return scanner.Err()
}

func runDecode(ctx context.Context, out io.Writer, opts sigfox.Options, format, hex string) error {
	result, err := sigfox.DecodeWithOptions(ctx, hex, opts)
	if err != nil {
		return err
	}
	rendered, err := render(result, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, rendered)
	return nil
}

func render(result sigfox.Result, format string) (string, error) {
	switch strings.ToLower(format) {
	case "yaml":
		data, err := yaml.Marshal(result.Summary())
		if err != nil {
			return "", fmt.Errorf("render yaml: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	case "json", "":
		data, err := json.MarshalIndent(result.Summary(), "", "  ")
		if err != nil {
			return "", fmt.Errorf("render json: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: output format %q", sigfox.ErrInvalidOption, format)
	}
}
