package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace/noop"
	"gopkg.in/yaml.v3"

	"upi-service/models"
	"upi-service/service"
	"upi-service/upi"
)

var errDecodeFailed = errors.New("decode failed")

func decodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [uri]",
		Short: "Decode a UPI URI",
		Long: `Decode a UPI URI into its payload and extra parameters.

Decoding runs locally unless --server points at a running upi-service.`,
		Args: cobra.ExactArgs(1),
		RunE: runDecode,
	}

	cmd.Flags().StringP("output", "o", "json", "Output format (json, yaml)")
	cmd.Flags().StringP("server", "s", "", "Base URL of a upi-service to decode with")

	return cmd
}

func runDecode(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	server, _ := cmd.Flags().GetString("server")

	if output != "json" && output != "yaml" {
		return fmt.Errorf("unknown output format %q", output)
	}

	var (
		result any
		err    error
	)
	if server != "" {
		result, err = decodeRemote(cmd.Context(), server, args[0])
	} else {
		result, err = decodeLocal(cmd.Context(), args[0])
	}
	if err != nil {
		return err
	}

	if err := render(cmd.OutOrStdout(), output, result); err != nil {
		return err
	}

	if failure, ok := result.(*models.DecodeErrorResponse); ok {
		return fmt.Errorf("%w: %s", errDecodeFailed, failure.Error)
	}
	return nil
}

func decodeLocal(ctx context.Context, raw string) (any, error) {
	svc := service.NewUPIService(noop.NewTracerProvider().Tracer("upictl"))
	requestID := uuid.NewString()

	res, err := svc.Decode(ctx, raw)
	if err != nil {
		var decodeErr *upi.Error
		if errors.As(err, &decodeErr) {
			return models.NewDecodeErrorResponse(requestID, raw, decodeErr), nil
		}
		return nil, err
	}
	return models.NewDecodeResponse(requestID, res), nil
}

func decodeRemote(ctx context.Context, server, raw string) (any, error) {
	body, err := json.Marshal(models.URIRequest{URI: raw})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(server, "/")+"/api/upi/decode", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   10 * time.Second,
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call upi-service: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var out models.DecodeResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, err
		}
		return &out, nil
	case http.StatusUnprocessableEntity:
		var out models.DecodeErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, err
		}
		return &out, nil
	default:
		var out struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&out)
		return nil, fmt.Errorf("upi-service returned status %d: %s", resp.StatusCode, out.Error)
	}
}

func render(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
