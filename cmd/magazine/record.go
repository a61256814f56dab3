package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ioncannon/magazine/pkg/capture"
	"ioncannon/magazine/pkg/cli"
	"ioncannon/magazine/pkg/clock"
)

var recordFlags struct {
	method  string
	uri     string
	headers []string
	body    string
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a captured request",
	Long: `Record a captured request as a new bullet.

The payload is given with --body, either inline or as @path to read it
from a file.

Examples:
  # Record a request without a payload
  magazine record --method GET --uri http://target/login

  # Record with headers and an inline payload
  magazine record --method POST --uri http://target/api \
    --header "Content-Type=application/json" --body '{"user":"admin"}'

  # Read the payload from a file
  magazine record --method POST --uri http://target/upload --body @payload.bin`,
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)

	recordCmd.Flags().StringVarP(&recordFlags.method, "method", "m", "GET", "request method")
	recordCmd.Flags().StringVarP(&recordFlags.uri, "uri", "u", "", "request URI")
	recordCmd.Flags().StringArrayVarP(&recordFlags.headers, "header", "H", nil, "request header (key=value, repeatable)")
	recordCmd.Flags().StringVarP(&recordFlags.body, "body", "b", "", "request payload (inline, or @path to read a file)")

	recordCmd.MarkFlagRequired("uri")
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewCommandError("record", err)
	}

	headers := make(map[string]string, len(recordFlags.headers))
	for _, h := range recordFlags.headers {
		key, value, ok := strings.Cut(h, "=")
		if !ok {
			return fmt.Errorf("invalid header %q (expected key=value)", h)
		}
		headers[key] = value
	}

	var body []byte
	if recordFlags.body != "" {
		if path, ok := strings.CutPrefix(recordFlags.body, "@"); ok {
			body, err = os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read payload file: %w", err)
			}
		} else {
			body = []byte(recordFlags.body)
		}
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return cli.NewCommandError("record", err)
	}
	defer closeStore()

	clock.Initialize(clock.NewMillis(cfg.Clock.Offset.Std()))
	defer clock.Cleanup()

	recorder := capture.NewRecorder(store, nil, &capture.Config{
		Enabled:      !cfg.Capture.Disabled,
		AsyncBuffer:  cfg.Capture.AsyncBuffer,
		WriteTimeout: cfg.Capture.WriteTimeout.Std(),
	})

	ctx := cli.SetupSignalHandler()
	if err := recorder.Record(ctx, &capture.Request{
		Method:  recordFlags.method,
		URI:     recordFlags.uri,
		Headers: headers,
		Body:    body,
	}); err != nil {
		recorder.Close()
		return cli.NewCommandError("record", err)
	}

	// Close drains the write buffer before the process exits.
	if err := recorder.Close(); err != nil {
		return cli.NewCommandError("record", err)
	}

	if cfg.Capture.Disabled {
		fmt.Println("Capture is disabled; nothing recorded.")
		return nil
	}

	fmt.Printf("Recorded %s %s (%d payload bytes)\n", recordFlags.method, recordFlags.uri, len(body))
	return nil
}
