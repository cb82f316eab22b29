package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/knowhub/internal/domain/search/page"
	"github.com/kailas-cloud/knowhub/internal/repository/catalog"
	chiTransport "github.com/kailas-cloud/knowhub/internal/transport/chi"
	searchuc "github.com/kailas-cloud/knowhub/internal/usecase/search"
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search one entity type, e.g. knowhub search questions 'title=go#status=open'",
		ArgsUsage: "<entity> [terms]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "page",
				Usage: "Zero-based page number",
			},
			&cli.IntFlag{
				Name:  "page-size",
				Usage: "Items per page (default from config)",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Field to sort by",
			},
			&cli.StringFlag{
				Name:  "direction",
				Usage: "Sort direction (asc, desc)",
				Value: "asc",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the page as JSON",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() < 1 {
				return fmt.Errorf("entity is required, one of %v", catalog.Names())
			}
			entity, terms := c.Args().Get(0), c.Args().Get(1)

			a, err := setup(ctx, c)
			if err != nil {
				return err
			}
			defer a.Close()

			size := c.Int("page-size")
			if size == 0 {
				size = a.cfg.Search.DefaultPageSize
			}
			req, err := page.NewRequest(c.Int("page"), size, c.String("sort"), c.String("direction"))
			if err != nil {
				return err
			}

			svc := searchuc.New(a.store, catalog.All(), a.logger, nil, a.cfg.Search.MaxPageSize)
			result, err := svc.Search(ctx, entity, terms, req)
			if err != nil {
				return err
			}

			resp := chiTransport.PageToResponse(result)
			if c.Bool("json") {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			out, err := renderPage(entity, resp)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}
