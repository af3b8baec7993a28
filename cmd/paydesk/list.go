package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Veraticus/paydesk/internal/cli"
	"github.com/Veraticus/paydesk/internal/model"
	"github.com/Veraticus/paydesk/internal/screen"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type listFlags struct {
	params   []string
	filters  []string
	hide     []string
	sort     string
	page     int
	pageSize int
	json     bool
}

func listCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list <screen>",
		Short: "Print one page of a screen",
		Long: `Fetch a screen from the backend and print one page of it.

Dated screens default to today. Each filter keeps the records whose column
contains the text, ignoring case; several filters must all match.`,
		Example: `  paydesk list deposits --param datefrom=2024-05-01 --param dateto=2024-05-07
  paydesk list withdrawals --filter status=pending --sort amount:desc
  paydesk list mutations --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringArrayVar(&flags.params, "param", nil, "backend list parameter key=value (repeatable)")
	cmd.Flags().StringArrayVar(&flags.filters, "filter", nil, "column filter column=text (repeatable)")
	cmd.Flags().StringSliceVar(&flags.hide, "hide", nil, "columns to hide")
	cmd.Flags().StringVar(&flags.sort, "sort", "", "sort column, optionally column:desc")
	cmd.Flags().IntVar(&flags.page, "page", 1, "page to print")
	cmd.Flags().IntVar(&flags.pageSize, "page-size", 0, "rows per page (default: the screen's)")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print the page as JSON")

	return cmd
}

func runList(cmd *cobra.Command, name string, flags listFlags) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	notices := cli.NewNotifier(cmd.ErrOrStderr())
	scr, err := buildScreen(cfg, name, screenDeps{notifier: notices})
	if err != nil {
		return err
	}

	params, err := listParams(scr.Definition(), flags.params, time.Now())
	if err != nil {
		return err
	}
	if err := applyListOptions(scr, listOptions{
		filters:  flags.filters,
		hide:     flags.hide,
		sort:     flags.sort,
		pageSize: flags.pageSize,
	}); err != nil {
		return err
	}

	if err := scr.Fetch(ctx, params); err != nil {
		return reportedError{err}
	}
	if flags.page > 1 {
		scr.SetPage(flags.page)
	}

	view := scr.View()
	if flags.json {
		return writeViewJSON(cmd, view)
	}
	return cli.RenderView(cmd.OutOrStdout(), view)
}

type pageJSON struct {
	Totals     map[string]decimal.Decimal `json:"totals,omitempty"`
	Screen     string                     `json:"screen"`
	Records    []model.Record             `json:"records"`
	Page       int                        `json:"page"`
	TotalPages int                        `json:"total_pages"`
	Visible    int                        `json:"visible"`
	Total      int                        `json:"total"`
}

func writeViewJSON(cmd *cobra.Command, view screen.View) error {
	records := view.Records
	if records == nil {
		records = []model.Record{}
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(pageJSON{
		Screen:     view.Title,
		Records:    records,
		Totals:     view.Totals,
		Page:       view.Page,
		TotalPages: view.TotalPages,
		Visible:    view.VisibleCount,
		Total:      view.TotalCount,
	}); err != nil {
		return fmt.Errorf("failed to encode page: %w", err)
	}
	return nil
}
