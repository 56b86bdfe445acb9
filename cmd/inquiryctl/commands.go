package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hafljin/inquiry-automation/config"
	"github.com/hafljin/inquiry-automation/internal/catalog"
	"github.com/hafljin/inquiry-automation/internal/classifier"
	"github.com/hafljin/inquiry-automation/internal/diagnostic"
	apperrors "github.com/hafljin/inquiry-automation/internal/errors"
	"github.com/hafljin/inquiry-automation/internal/logger"
	"github.com/hafljin/inquiry-automation/internal/models"
	"github.com/hafljin/inquiry-automation/internal/validator"
)

type rootOptions struct {
	engine   string
	logLevel string
	delays   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "inquiryctl",
		Short:         "Run inquiry diagnostics from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.InitWithWriter(cmd.ErrOrStderr(), opts.logLevel, "text")
		},
	}

	root.PersistentFlags().StringVar(&opts.engine, "engine", config.EngineRules, "diagnostic engine (rules or llm)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error", "log level")
	root.PersistentFlags().BoolVar(&opts.delays, "delays", false, "apply the configured processing delays")

	root.AddCommand(
		newValidateCmd(),
		newAnalyzeCmd(opts),
		newSelectCmd(opts),
		newChatCmd(opts),
		newCatalogCmd(),
	)
	return root
}

func (o *rootOptions) service() (*diagnostic.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.Diagnostic.Engine = strings.ToLower(o.engine)

	engine, err := diagnostic.NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	var svcOpts []diagnostic.Option
	if o.delays {
		svcOpts = append(svcOpts, diagnostic.WithDelays(diagnostic.DelaysFromConfig(cfg.Diagnostic)))
	}
	return diagnostic.NewService(engine, svcOpts...), nil
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <text>",
		Short: "Check whether an inquiry is specific enough to classify",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd, validator.Validate(strings.Join(args, " ")))
		},
	}
}

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <text>",
		Short: "Recommend tiers for a free-text inquiry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			resp, err := svc.AnalyzeInquiry(commandContext(cmd), strings.Join(args, " "))
			if err != nil {
				var verr *apperrors.InquiryValidationError
				if errors.As(err, &verr) {
					return fmt.Errorf("invalid inquiry: %s", verr.Message)
				}
				return err
			}
			return printJSON(cmd, resp)
		},
	}
}

func newSelectCmd(opts *rootOptions) *cobra.Command {
	var types, channels []string

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Recommend tiers for checked inquiry types and channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			sel := models.DiagnosticSelection{InquiryTypes: types, Channels: channels}
			return printJSON(cmd, svc.AnalyzeBySelection(commandContext(cmd), sel))
		},
	}

	cmd.Flags().StringSliceVar(&types, "type", nil, "inquiry type id (repeatable)")
	cmd.Flags().StringSliceVar(&channels, "channel", nil, "channel id (repeatable)")
	return cmd
}

func newChatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message>",
		Short: "Ask the shop assistant a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			return printJSON(cmd, svc.GetBotResponse(commandContext(cmd), strings.Join(args, " ")))
		},
	}
}

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the tier catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Verify every rule references a known tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			refs := classifier.TierReferences()
			if err := catalog.Verify(refs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d rules reference known tiers\n", len(refs))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the tiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd, catalog.All())
		},
	})

	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
