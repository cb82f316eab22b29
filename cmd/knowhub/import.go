package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	dombatch "github.com/kailas-cloud/knowhub/internal/domain/batch"
	batchuc "github.com/kailas-cloud/knowhub/internal/usecase/batch"
)

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Load rows from a YAML fixture into the configured database",
		ArgsUsage: "<file.yaml>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent writes per table",
				Value: batchuc.DefaultWorkers,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one fixture file")
			}

			f, err := os.Open(filepath.Clean(c.Args().First()))
			if err != nil {
				return fmt.Errorf("opening fixture: %w", err)
			}
			defer f.Close()

			fixture, err := batchuc.Decode(f)
			if err != nil {
				return err
			}

			a, err := setup(ctx, c)
			if err != nil {
				return err
			}
			defer a.Close()

			results := batchuc.New(a.store).WithWorkers(c.Int("workers")).Import(ctx, fixture)
			for _, r := range results {
				if r.Status() == dombatch.StatusError {
					a.logger.Warn("Row rejected",
						zap.String("table", r.Table()),
						zap.String("key", r.Key()),
						zap.Error(r.Err()),
					)
				}
			}

			sum := dombatch.Summarize(results)
			fmt.Printf("imported %d rows, %d failed\n", sum.OK, sum.Failed)
			if sum.Failed > 0 {
				return fmt.Errorf("%d rows failed", sum.Failed)
			}
			return nil
		},
	}
}
