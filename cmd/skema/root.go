package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/skema"
	"github.com/reoring/skema/dsl"
	"github.com/reoring/skema/i18n"
	"github.com/reoring/skema/internal/config"
	"github.com/reoring/skema/internal/logging"
	"github.com/reoring/skema/protocol"
	"github.com/reoring/skema/value"
)

// errInvalid is returned when at least one document failed validation. The
// reports have already been written.
var errInvalid = errors.New("validation failed")

// report is one line of `skema validate` output.
type report struct {
	File      string       `json:"file"`
	RequestID string       `json:"request_id"`
	Schema    string       `json:"schema"`
	Valid     bool         `json:"valid"`
	Output    *value.Value `json:"output,omitempty"`
	Issues    skema.Issues `json:"issues,omitempty"`
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		configPath string
		lang       string
		cfg        *config.Config
		logger     *zap.Logger
	)

	rootCmd := &cobra.Command{
		Use:           "skema",
		Short:         "Validate protocol messages against skema schemas",
		Version:       fmt.Sprintf("%s (commit: %s)", version, gitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if lang != "" {
				cfg.Language = lang
			}
			i18n.SetLanguage(cfg.Language)
			logger, err = logging.New(cfg.Log)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (default: skema.yaml, SKEMA_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "language of issue messages, e.g. en or ja")

	var (
		schemaName string
		format     string
		failFast   bool
	)
	validateCmd := &cobra.Command{
		Use:   "validate --schema NAME FILE...",
		Short: "Validate documents; use - for stdin",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, ok := protocol.Lookup(schemaName)
			if !ok {
				return fmt.Errorf("unknown schema %q (see `skema schemas`)", schemaName)
			}
			opt := cfg.ParseOpt()
			if failFast {
				opt.Mode = skema.FailFast
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			invalid := false
			for _, file := range args {
				rep, err := validateFile(cmd.Context(), e, file, pickFormat(format, file, cfg.Format), opt, logger)
				if err != nil {
					return err
				}
				if !rep.Valid {
					invalid = true
				}
				if err := enc.Encode(rep); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
			}
			if invalid {
				return errInvalid
			}
			return nil
		},
	}
	validateCmd.Flags().StringVarP(&schemaName, "schema", "s", "", "message name (required)")
	validateCmd.Flags().StringVarP(&format, "format", "f", "", "input format: json, yaml or cbor (default: by extension, then config)")
	validateCmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop at the first issue")
	_ = validateCmd.MarkFlagRequired("schema")

	schemasCmd := &cobra.Command{
		Use:   "schemas",
		Short: "List the known message schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, n := range protocol.Names() {
				e, _ := protocol.Lookup(n)
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", n, dsl.Describe(e.Schema))
			}
			return nil
		},
	}

	jsonSchemaCmd := &cobra.Command{
		Use:   "jsonschema NAME",
		Short: "Print the JSON Schema of a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, ok := protocol.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown schema %q", args[0])
			}
			sch, err := dsl.JSONSchema(e.Schema)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(sch)
		},
	}

	rootCmd.AddCommand(validateCmd, schemasCmd, jsonSchemaCmd)
	return rootCmd
}

func pickFormat(flag, file, fallback string) string {
	if flag != "" {
		return strings.ToLower(flag)
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".cbor":
		return "cbor"
	}
	return fallback
}

func validateFile(ctx context.Context, e protocol.Entry, file, format string, opt skema.ParseOpt, logger *zap.Logger) (report, error) {
	rep := report{File: file, RequestID: uuid.NewString(), Schema: e.Name}
	log := logger.With(zap.String("request_id", rep.RequestID), zap.String("file", file), zap.String("schema", e.Name))

	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return rep, fmt.Errorf("read %s: %w", file, err)
	}

	var src skema.Source
	switch format {
	case "json":
		src = skema.JSONBytes(data)
	case "yaml":
		src = skema.YAMLBytes(data)
	case "cbor":
		src = skema.CBORBytes(data)
	default:
		return rep, fmt.Errorf("unsupported format %q", format)
	}
	opt.OnWarning = func(it skema.Issue) {
		log.Warn("input warning", zap.String("code", it.Code), zap.String("pointer", it.Pointer), zap.String("hint", it.Hint))
	}

	out, err := skema.ParseFrom(ctx, e.Schema, src, opt)
	if err != nil {
		iss, ok := skema.AsIssues(err)
		if !ok {
			return rep, err
		}
		rep.Issues = iss
		log.Info("document rejected", zap.Strings("codes", iss.Codes()))
		return rep, nil
	}
	v, err := skema.ToValue(out)
	if err != nil {
		return rep, fmt.Errorf("%s: %w", file, err)
	}
	rep.Valid = true
	rep.Output = &v
	log.Debug("document accepted")
	return rep, nil
}
