package main

import (
	"fmt"
	"strings"

	"github.com/iwvelando/financing-schedule/pkg/constants"
	"github.com/iwvelando/financing-schedule/pkg/pagination"
	"github.com/iwvelando/financing-schedule/pkg/validation"
	"github.com/spf13/cobra"
)

func newPagesCmd() *cobra.Command {
	var page, totalPages, rows, pageSize, siblings, boundaries int

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Print the page control window for a list",
		Example: `  financing-schedule pages --page 5 --total 10
  financing-schedule pages --rows 36 --page-size 10 --siblings 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidatePaginationCounts(siblings, boundaries); err != nil {
				return err
			}

			total := totalPages
			if !cmd.Flags().Changed("total") {
				if !cmd.Flags().Changed("rows") {
					return fmt.Errorf("one of --total or --rows is required")
				}
				total = pagination.TotalPages(rows, pageSize)
			}
			if err := validation.ValidateTotalPages(total); err != nil {
				return err
			}

			req := pagination.Request{
				CurrentPage:   pagination.Clamp(page, total),
				TotalPages:    total,
				SiblingCount:  siblings,
				BoundaryCount: boundaries,
			}

			items := req.Items()
			parts := make([]string, 0, len(items))
			for _, item := range items {
				parts = append(parts, item.String())
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, " "))
			return err
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "current page, clamped into range")
	cmd.Flags().IntVar(&totalPages, "total", 0, "total number of pages")
	cmd.Flags().IntVar(&rows, "rows", 0, "total number of records, used when --total is not given")
	cmd.Flags().IntVar(&pageSize, "page-size", constants.DefaultPageSize, "records per page, used with --rows")
	cmd.Flags().IntVar(&siblings, "siblings", constants.DefaultSiblingCount, "pages shown on each side of the current page")
	cmd.Flags().IntVar(&boundaries, "boundaries", constants.DefaultBoundaryCount, "pages pinned at each end")
	return cmd
}
