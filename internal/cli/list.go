package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mannit-co/albayan/internal/cli/pagination"
	"github.com/mannit-co/albayan/internal/client"
	"github.com/mannit-co/albayan/internal/config"
	"github.com/mannit-co/albayan/internal/engine"
	"github.com/mannit-co/albayan/internal/logging"
	"github.com/mannit-co/albayan/internal/pager"
	"github.com/mannit-co/albayan/internal/tui"
)

// Output formats accepted by --output.
const (
	OutputTable  = "table"
	OutputJSON   = "json"
	OutputYAML   = "yaml"
	OutputNDJSON = "ndjson"
)

//nolint:gochecknoglobals // accepted values
var outputFormats = []string{OutputTable, OutputJSON, OutputYAML, OutputNDJSON}

// listItem is an entity the list commands can show.
type listItem interface {
	tui.Item
	engine.Filterable
}

// collection binds a list command to one entity type.
type collection[T listItem] struct {
	// name is the config screen name and JSON key, e.g. "candidates".
	name   string
	screen func() tui.Screen[T]
	fetch  func(ctx context.Context, src client.Source) ([]T, error)
}

// listParams holds the flags shared by the list commands.
type listParams struct {
	search      string
	filter      []string
	sort        string
	recentFirst bool
	page        int
	pageSize    int
	output      string
	plain       bool
	noColor     bool
}

// newListCmd builds the list command for a collection.
func newListCmd[T listItem](coll collection[T], cmd *cobra.Command) *cobra.Command {
	var params listParams

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return executeList(cmd, coll, params)
	}

	cmd.Flags().StringVar(&params.search, "search", "", "Case-insensitive text search")
	cmd.Flags().StringArrayVar(&params.filter, "filter", []string{},
		"Filter expressions (e.g., 'status=completed', 'difficulty=easy,medium')")
	cmd.Flags().StringVar(&params.sort, "sort", "", "Sort expression (e.g., 'name', 'score:desc')")
	cmd.Flags().BoolVar(&params.recentFirst, "recent-first", false, "Show the most recent items first")
	cmd.Flags().IntVar(&params.page, "page", 0, "Page to show (1-indexed); out-of-range pages are clamped")
	cmd.Flags().IntVar(&params.pageSize, "page-size", 0,
		fmt.Sprintf("Items per page (default from pagination.%s_page_size)", coll.name))
	cmd.Flags().StringVar(&params.output, "output", config.GetDefaultOutputFormat(),
		"Output format: table, json, yaml, or ndjson")
	cmd.Flags().BoolVar(&params.plain, "plain", false, "Print a plain table even in a terminal")
	cmd.Flags().BoolVar(&params.noColor, "no-color", false, "Disable styling")

	return cmd
}

// validateListParams checks every flag before anything is fetched.
func validateListParams[T listItem](coll collection[T], params listParams) (pagination.PaginationParams, error) {
	if !slices.Contains(outputFormats, params.output) {
		return pagination.PaginationParams{}, fmt.Errorf("invalid --output %q: use %s",
			params.output, strings.Join(outputFormats, ", "))
	}

	field, order, err := pagination.ParseSort(params.sort)
	if err != nil {
		return pagination.PaginationParams{}, err
	}
	if field != "" {
		if fieldErr := coll.screen().Sorter.ValidateField(field); fieldErr != nil {
			return pagination.PaginationParams{}, fieldErr
		}
	}

	for _, expr := range params.filter {
		if filterErr := engine.ValidateFilter[T](expr); filterErr != nil {
			return pagination.PaginationParams{}, filterErr
		}
	}

	p := pagination.PaginationParams{
		Page:      params.page,
		PageSize:  params.pageSize,
		SortField: field,
		SortOrder: order,
	}
	if validateErr := p.Validate(); validateErr != nil {
		return pagination.PaginationParams{}, validateErr
	}
	return p, nil
}

// executeList fetches, narrows, orders and pages a collection, then renders it.
func executeList[T listItem](cmd *cobra.Command, coll collection[T], params listParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	p, err := validateListParams(coll, params)
	if err != nil {
		return err
	}

	cfg := config.GetGlobalConfig()
	pageSize := p.EffectivePageSize(cfg.PageSizeFor(coll.name))

	log.Debug().Ctx(ctx).
		Str("operation", "list").
		Str("collection", coll.name).
		Int("page", p.EffectivePage()).
		Int("page_size", pageSize).
		Msg("listing collection")

	src, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}

	fetch := func(ctx context.Context) ([]T, error) {
		items, fetchErr := coll.fetch(ctx, src)
		if fetchErr != nil {
			return nil, fetchErr
		}
		return engine.ApplyFilters(items, params.filter)
	}

	mode := tui.OutputModePlain
	if params.output == OutputTable {
		mode = tui.DetectOutputMode(false, params.noColor, params.plain)
	}
	if mode == tui.OutputModeInteractive {
		return runInteractiveList(ctx, coll, params, p, pageSize, fetch)
	}

	items, err := fetch(ctx)
	if err != nil {
		return err
	}
	items = orderItems(coll, items, params.search, params.recentFirst, p)

	state, err := pagination.Apply(items, pagination.PaginationParams{Page: p.Page, PageSize: pageSize}, pageSize)
	if err != nil {
		return err
	}
	meta := pagination.NewPaginationMeta(state, p.Page)
	if meta.Clamped() {
		log.Debug().Ctx(ctx).Int("requested", p.Page).Int("page", meta.CurrentPage).Msg("page clamped")
	}

	err = renderList(cmd.OutOrStdout(), coll, params.output, mode, state, meta)
	if isBrokenPipe(err) {
		return nil
	}
	return err
}

// orderItems applies search, recent-first and sort, in that order.
func orderItems[T listItem](
	coll collection[T],
	items []T,
	search string,
	recentFirst bool,
	p pagination.PaginationParams,
) []T {
	items = engine.Search(items, search)
	if recentFirst {
		items = engine.RecentFirst(items)
	}
	if p.SortField != "" {
		items = coll.screen().Sorter.Sort(items, p.SortField, p.SortOrder)
	}
	return items
}

// runInteractiveList launches the TUI; it fetches behind a spinner.
func runInteractiveList[T listItem](
	ctx context.Context,
	coll collection[T],
	params listParams,
	p pagination.PaginationParams,
	pageSize int,
	fetch tui.Fetcher[T],
) error {
	model, err := tui.NewScreenModelWithLoading(ctx, coll.screen(), pageSize, fetch)
	if err != nil {
		return err
	}
	model.SetQuery(params.search)
	model.SetRecentFirst(params.recentFirst)
	if p.SortField != "" {
		model.SetSort(p.SortField, p.SortOrder)
	}
	if p.Page > 0 {
		model.GoToPage(p.Page)
	}

	if _, runErr := tea.NewProgram(model, tea.WithContext(ctx)).Run(); runErr != nil {
		return fmt.Errorf("failed to run interactive %s TUI: %w", coll.name, runErr)
	}
	return model.Err()
}

// pageOf returns the items on the current page, never nil.
func pageOf[T any](state pager.State[T]) []T {
	if state.PaginatedData == nil {
		return []T{}
	}
	return state.PaginatedData
}
