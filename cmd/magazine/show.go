package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ioncannon/magazine/pkg/bullet"
	"ioncannon/magazine/pkg/cli"
)

var showFlags struct {
	format  string
	payload bool
	output  string
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one bullet",
	Long: `Show a stored bullet by its identity.

Examples:
  # Show bullet metadata
  magazine show 6c1b6a1e-...

  # Write the payload to a file
  magazine show 6c1b6a1e-... --payload --output payload.bin`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVar(&showFlags.format, "format", "text", "output format: text, json")
	showCmd.Flags().BoolVar(&showFlags.payload, "payload", false, "include the payload")
	showCmd.Flags().StringVarP(&showFlags.output, "output", "o", "", "payload output file (default: stdout)")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewCommandError("show", err)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return cli.NewCommandError("show", err)
	}
	defer closeStore()

	ctx := cli.SetupSignalHandler()
	b, err := store.GetByID(ctx, args[0])
	if err != nil {
		if bullet.IsNotFound(err) {
			return fmt.Errorf("no bullet with id %s", args[0])
		}
		return cli.NewCommandError("show", err)
	}

	if showFlags.format == "json" {
		formatter := &cli.JSONFormatter{Indent: true}
		if err := formatter.FormatTo(os.Stdout, b); err != nil {
			return err
		}
	} else {
		printBullet(b)
	}

	if !showFlags.payload {
		return nil
	}
	return writePayload(ctx, store, b)
}

// writePayload copies the bullet's payload to --output or stdout.
func writePayload(ctx context.Context, store *bullet.Store, b *bullet.Bullet) error {
	reader, err := store.GetFile(ctx, b)
	if err != nil {
		if bullet.IsNoFile(err) {
			fmt.Fprintln(os.Stderr, "Bullet has no payload.")
			return nil
		}
		return cli.NewCommandError("show", err)
	}
	defer reader.Close()

	out := os.Stdout
	if showFlags.output != "" {
		out, err = os.Create(showFlags.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer out.Close()
	}

	if _, err := io.Copy(out, reader); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	return nil
}
