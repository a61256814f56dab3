package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ioncannon/magazine/pkg/bullet"
	"ioncannon/magazine/pkg/cli"
)

var listFlags struct {
	format string
	limit  int
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored bullets in capture order",
	Long: `List stored bullets, ordered by their capture clock reading.

Examples:
  # List all bullets
  magazine list

  # List the first 20 as JSON
  magazine list --limit 20 --format json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listFlags.format, "format", "text", "output format: text, json")
	listCmd.Flags().IntVar(&listFlags.limit, "limit", 0, "max results (0 for all)")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewCommandError("list", err)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return cli.NewCommandError("list", err)
	}
	defer closeStore()

	ctx := cli.SetupSignalHandler()
	bullets, err := store.AllChronological(ctx)
	if err != nil {
		return cli.NewCommandError("list", err)
	}
	if listFlags.limit > 0 && len(bullets) > listFlags.limit {
		bullets = bullets[:listFlags.limit]
	}

	if listFlags.format == "json" {
		formatter := &cli.JSONFormatter{Indent: true}
		return formatter.FormatTo(os.Stdout, map[string]any{
			"total":   len(bullets),
			"bullets": bullets,
		})
	}

	if len(bullets) == 0 {
		fmt.Println("No bullets stored.")
		return nil
	}

	for _, b := range bullets {
		fmt.Printf("%s  %s  %-7s %s", b.ID, formatClock(b.Time), b.Method, b.URI)
		if b.FileRef != "" {
			fmt.Print("  [payload]")
		}
		fmt.Println()
	}
	fmt.Printf("\nTotal: %d\n", len(bullets))
	return nil
}

// formatClock renders a capture clock reading as elapsed time.
func formatClock(millis int64) string {
	return time.Duration(millis * int64(time.Millisecond)).String()
}

// printBullet renders one bullet in detail.
func printBullet(b *bullet.Bullet) {
	fmt.Printf("ID:     %s\n", b.ID)
	fmt.Printf("Time:   %s (%d ms)\n", formatClock(b.Time), b.Time)
	fmt.Printf("Method: %s\n", b.Method)
	fmt.Printf("URI:    %s\n", b.URI)
	if len(b.Headers) > 0 {
		fmt.Println("Headers:")
		for key, value := range b.Headers {
			fmt.Printf("  %s: %s\n", key, value)
		}
	}
	if b.FileRef != "" {
		fmt.Printf("Payload: %s\n", b.FileRef)
	}
}
