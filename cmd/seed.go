package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"task-manager/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert tasks into the configured store",
	Long: `Insert generated tasks ("Task 1" ... "Task N") or the tasks listed in a
TOML or YAML seed file. Creates run concurrently on a bounded worker pool.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntP("count", "n", 10, "number of generated tasks")
	seedCmd.Flags().StringP("file", "f", "", "seed file (.toml, .yaml or .yml); overrides --count")
	seedCmd.Flags().IntP("workers", "w", seed.DefaultWorkers, "concurrent creates")

	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateStore(); err != nil {
		return err
	}

	count, _ := cmd.Flags().GetInt("count")
	file, _ := cmd.Flags().GetString("file")
	workers, _ := cmd.Flags().GetInt("workers")

	var titles []string
	if file != "" {
		titles, err = seed.LoadFile(file)
		if err != nil {
			return err
		}
	} else {
		if count <= 0 {
			return errors.New("--count must be positive")
		}
		titles = seed.Generate(count)
	}

	log := newLogger(cmd, cfg)
	st, err := openStore(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	start := time.Now()
	n, err := seed.Run(cmd.Context(), st, titles, workers)
	log.Info("seed finished", "created", n, "requested", len(titles), "duration", time.Since(start))
	if err != nil {
		return fmt.Errorf("seeded %d of %d tasks: %w", n, len(titles), err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d tasks\n", n)
	return nil
}
