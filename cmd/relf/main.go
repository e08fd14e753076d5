package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkpankov/relf/internal/elfheader"
	"github.com/mkpankov/relf/internal/utils"
)

// ErrArgumentMissing is returned when no file path is given
var ErrArgumentMissing = errors.New("missing path to ELF file")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type inspectOptions struct {
	outputFormat string
	configFile   string
	verbose      bool
}

func newRootCmd() *cobra.Command {
	var opts inspectOptions

	cmd := &cobra.Command{
		Use:   "relf <file>",
		Short: "Display the ELF header of a 64-bit ELF file",
		Long: `relf decodes the fixed-size header of a 64-bit ELF object file and prints
it in the same layout as readelf -h.

Only the leading 64-byte header is read. Multi-byte fields are decoded in
the byte order the file declares.

Configuration is read from relf.yaml in the working directory or
$HOME/.relf, or from the file given with --config. RELF_LOG_LEVEL,
RELF_LOG_FORMAT and RELF_OUTPUT_FORMAT override the file.`,
		Version:       utils.GetVersionString(),
		Args:          requireFile,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", "", "Output format (text, json)")
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "Configuration file path")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}

// requireFile accepts exactly one positional argument
func requireFile(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return ErrArgumentMissing
	case 1:
		return nil
	default:
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
}

// runInspect decodes the header of path and writes the report to out
func runInspect(out, errOut io.Writer, path string, opts inspectOptions) error {
	overrides := map[string]interface{}{}
	bootstrapLevel := utils.LogLevelWarn
	if opts.outputFormat != "" {
		overrides["output_format"] = opts.outputFormat
	}
	if opts.verbose {
		overrides["log_level"] = string(utils.LogLevelDebug)
		bootstrapLevel = utils.LogLevelDebug
	}

	manager := utils.NewConfigManager()
	manager.SetLogger(utils.NewLogger(utils.LoggerConfig{Level: bootstrapLevel, Output: errOut}))
	if err := manager.LoadWithOverrides(opts.configFile, overrides); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	config := manager.GetConfig()

	loggerConfig := config.LoggerConfig()
	loggerConfig.Output = errOut
	logger := utils.NewLogger(loggerConfig)
	log := logger.WithComponent("relf")

	log.Debugf("Reading ELF header from: %s", path)
	header, err := elfheader.ReadFile(path)
	if err != nil {
		log.WithError(err).Debug("Header decoding failed")
		return err
	}
	warnUnrecognized(logger, header)

	switch config.OutputFormat {
	case utils.OutputFormatJSON:
		err = elfheader.WriteJSON(out, header)
	default:
		err = elfheader.WriteText(out, header)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	log.Debugf("Decoded %s header of type %s", header.Ident.Class, header.Type)
	return nil
}

// warnUnrecognized logs identification values that decode to a fallback name
func warnUnrecognized(logger *utils.Logger, h *elfheader.Header) {
	log := logger.WithComponent("elfheader")
	if !h.Ident.Class.Known() {
		log.Warnf("Unrecognized ELF class: %d", uint8(h.Ident.Class))
	} else if h.Ident.Class != elfheader.Class64 {
		log.Warnf("File class is %s, fields are decoded with the ELF64 layout", h.Ident.Class)
	}
	if !h.Ident.Data.Known() || h.Ident.Data == elfheader.DataNone {
		log.Warnf("Unrecognized data encoding %d, decoding in host byte order", uint8(h.Ident.Data))
	}
	if !h.Ident.Version.Known() {
		log.Warnf("Unrecognized ELF version: %d", uint8(h.Ident.Version))
	}
	if !h.Ident.OSABI.Known() {
		log.Warnf("Unrecognized OS/ABI: %d", uint8(h.Ident.OSABI))
	}
	if !h.Type.Known() {
		log.Warnf("Unrecognized file type: %#x", uint16(h.Type))
	}
}
