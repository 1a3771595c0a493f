package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace/noop"

	"upi-service/service"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [uri]",
		Short: "Check whether a URI is a UPI URI",
		Long: `Check whether a URI uses the upi scheme.

Exits non-zero when it does not.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := service.NewUPIService(noop.NewTracerProvider().Tracer("upictl"))

			isUPI, err := svc.Classify(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !isUPI {
				return fmt.Errorf("%w: %s", service.ErrNotUPI, args[0])
			}

			fmt.Fprintln(cmd.OutOrStdout(), "upi")
			return nil
		},
	}
}
