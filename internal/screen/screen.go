package screen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/paydesk/internal/action"
	"github.com/Veraticus/paydesk/internal/backend"
	"github.com/Veraticus/paydesk/internal/common"
	"github.com/Veraticus/paydesk/internal/grid"
	"github.com/Veraticus/paydesk/internal/model"
	"github.com/Veraticus/paydesk/internal/normalize"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// Fetcher loads a list endpoint.
type Fetcher interface {
	FetchList(ctx context.Context, ep backend.Endpoint, params map[string]any) (backend.Envelope, error)
}

// Backend is everything a screen needs from the transport.
type Backend interface {
	Fetcher
	action.Performer
}

// Notifier receives user-visible feedback.
type Notifier interface {
	Notify(n model.Notice)
}

// NotifyFunc adapts a function to Notifier.
type NotifyFunc func(model.Notice)

// Notify implements Notifier.
func (f NotifyFunc) Notify(n model.Notice) { f(n) }

// Deps are the collaborators injected into a screen.
type Deps struct {
	Backend   Backend
	Confirmer action.Confirmer
	Recorder  action.Recorder
	Notifier  Notifier
	Limiter   *rate.Limiter
	Session   model.Session
}

// View is a consistent snapshot of what a screen renders.
type View struct {
	FetchedAt      time.Time
	Totals         map[string]decimal.Decimal
	Filters        grid.FilterMap
	Sort           *grid.SortSpec
	Selected       map[string]bool
	Title          string
	HeaderState    grid.TriState
	Columns        []model.ColumnSpec
	Records        []model.Record
	Keys           []string
	Page           int
	TotalPages     int
	PageSize       int
	VisibleCount   int
	TotalCount     int
	SelectionCount int
	SelectionLimit int
	Loading        bool
}

// Screen owns the state of one business view. It is safe for concurrent use;
// fetches run without holding the lock and the latest request wins.
type Screen struct {
	fetchedAt  time.Time
	fetcher    Fetcher
	notifier   Notifier
	normalizer *normalize.Normalizer
	dispatcher *action.Dispatcher
	control    *grid.TableControl
	selection  *grid.Selection
	filters    grid.FilterMap
	params     map[string]any
	key        model.KeyFunc
	records    []model.Record
	def        Definition
	page       grid.PageState
	generation uint64
	mu         sync.Mutex
	loading    bool
}

// New creates a screen for def.
func New(def Definition, deps Deps) *Screen {
	key := def.KeyFunc()
	s := &Screen{
		def:        def,
		key:        key,
		fetcher:    deps.Backend,
		notifier:   deps.Notifier,
		normalizer: normalize.New(def.Normalize),
		control:    grid.NewTableControl(def.Columns),
		selection:  grid.NewSelection(def.SelectionLimit),
		filters:    grid.NewFilterMap(def.Columns),
		page:       grid.NewPageState(def.PageSize),
		params:     make(map[string]any),
	}
	s.dispatcher = action.NewDispatcher(action.Config{
		Screen:    def.Name,
		Performer: deps.Backend,
		Confirmer: deps.Confirmer,
		Recorder:  deps.Recorder,
		Limiter:   deps.Limiter,
		Key:       key,
		Session:   deps.Session,
	})
	s.control.OnReset(func() {
		s.filters.Reset()
		s.selection.Clear()
		s.page.CurrentPage = 1
	})
	return s
}

// Definition returns the static description.
func (s *Screen) Definition() Definition {
	return s.def
}

// SetProgress reports per-record action progress.
func (s *Screen) SetProgress(fn func(done, total int)) {
	s.dispatcher.SetProgress(fn)
}

// Loading reports whether the latest fetch is still in flight.
func (s *Screen) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Params returns a copy of the params of the last fetch.
func (s *Screen) Params() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyParams(s.params)
}

// Fetch loads the list with params. Invalid params are reported and nothing
// is sent. A response that is no longer the latest request is dropped.
func (s *Screen) Fetch(ctx context.Context, params map[string]any) error {
	if err := s.def.ValidateParams(params); err != nil {
		s.notify(model.NoticeError, common.UserMessage(err))
		return err
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.loading = true
	s.params = copyParams(params)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if gen == s.generation {
			s.loading = false
		}
		s.mu.Unlock()
	}()

	env, err := s.fetcher.FetchList(ctx, s.def.List, copyParams(params))
	if s.stale(gen) {
		slog.Debug("Dropping stale response", "screen", s.def.Name, "generation", gen)
		return nil
	}
	if err != nil {
		common.LogError(err, "Failed to load screen", common.Fields{"screen": s.def.Name})
		s.notify(model.NoticeError, fmt.Sprintf("Unable to load %s", strings.ToLower(s.title())))
		return err
	}
	if !env.OK() {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("Unable to load %s", strings.ToLower(s.title()))
		}
		s.notify(model.NoticeError, msg)
		return fmt.Errorf("%w: %s", common.ErrApplication, msg)
	}

	records := s.normalizer.Normalize(env.Records)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		slog.Debug("Dropping stale response", "screen", s.def.Name, "generation", gen)
		return nil
	}
	s.records = records
	s.fetchedAt = time.Now()
	present := make(map[string]bool, len(records))
	for _, r := range records {
		present[s.key(r)] = true
	}
	s.selection.Retain(present)
	s.clampLocked()

	slog.Debug("Screen loaded", "screen", s.def.Name, "records", len(records))
	return nil
}

// Refresh repeats the last fetch.
func (s *Screen) Refresh(ctx context.Context) error {
	return s.Fetch(ctx, s.Params())
}

// loaded reports whether a fetch has completed.
func (s *Screen) loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.fetchedAt.IsZero()
}

func (s *Screen) stale(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen != s.generation
}

// View derives the current page.
func (s *Screen) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible, page, keys := s.pageLocked()
	columns := s.control.VisibleColumns()

	selected := make(map[string]bool)
	for _, k := range keys {
		if s.selection.Contains(k) {
			selected[k] = true
		}
	}

	filters := make(grid.FilterMap, len(s.filters))
	for k, v := range s.filters {
		filters[k] = v
	}

	return View{
		Title:          s.title(),
		Columns:        columns,
		Records:        page.Records,
		Keys:           keys,
		Page:           page.Number,
		TotalPages:     page.TotalPages,
		PageSize:       s.page.ItemsPerPage,
		VisibleCount:   len(visible),
		TotalCount:     len(s.records),
		Totals:         grid.Totals(visible, columns),
		Filters:        filters,
		Sort:           s.control.Sort(),
		Selected:       selected,
		SelectionCount: s.selection.Len(),
		SelectionLimit: s.selection.Limit(),
		HeaderState:    s.selection.PageSelectionState(keys),
		Loading:        s.loading,
		FetchedAt:      s.fetchedAt,
	}
}

// pageLocked derives the visible records, the current page and its keys.
func (s *Screen) pageLocked() ([]model.Record, grid.Page, []string) {
	visible := s.visibleLocked()
	s.page.Clamp(len(visible))
	page := grid.Paginate(visible, s.page.CurrentPage, s.page.ItemsPerPage)
	keys := make([]string, len(page.Records))
	for i, r := range page.Records {
		keys[i] = s.key(r)
	}
	return visible, page, keys
}

// Visible returns every record passing the filters, in display order.
func (s *Screen) Visible() []model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleLocked()
}

func (s *Screen) visibleLocked() []model.Record {
	return grid.Derive(s.records, s.filters, s.def.Columns, s.control.Sort())
}

func (s *Screen) clampLocked() {
	s.page.Clamp(len(s.visibleLocked()))
}

// SetFilter sets the free-text filter of one column.
func (s *Screen) SetFilter(key, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters[key] = text
	s.clampLocked()
}

// ClearFilters empties every column filter.
func (s *Screen) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Reset()
	s.clampLocked()
}

// ToggleSort cycles the sort on a column.
func (s *Screen) ToggleSort(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.control.SetSort(key)
	s.clampLocked()
}

// SetSort replaces the sort.
func (s *Screen) SetSort(spec *grid.SortSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.control.SetSortSpec(spec)
	s.clampLocked()
}

// HideColumn hides a column.
func (s *Screen) HideColumn(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.control.HideColumn(key)
	s.clampLocked()
}

// ShowColumn shows a hidden column.
func (s *Screen) ShowColumn(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.control.ShowColumn(key)
	s.clampLocked()
}

// ResetAll restores columns and sort, and clears filters, selection, and page.
func (s *Screen) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.control.ResetAll()
	s.clampLocked()
}

// NextPage moves forward one page, stopping at the last.
func (s *Screen) NextPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page.CurrentPage++
	s.clampLocked()
}

// PrevPage moves back one page, stopping at the first.
func (s *Screen) PrevPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page.CurrentPage--
	s.clampLocked()
}

// SetPage jumps to page n, clamped into range.
func (s *Screen) SetPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page.CurrentPage = n
	s.clampLocked()
}

// SetPageSize changes the page size and returns to the first page.
func (s *Screen) SetPageSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 {
		n = grid.DefaultPageSize
	}
	s.page.ItemsPerPage = n
	s.page.CurrentPage = 1
}

// ToggleSelect flips the selection of one record. A full selection surfaces a
// warning and is left unchanged.
func (s *Screen) ToggleSelect(key string) (bool, error) {
	s.mu.Lock()
	selected, err := s.selection.Toggle(key)
	s.mu.Unlock()
	if err != nil {
		s.notify(model.NoticeWarning, capitalize(err.Error()))
	}
	return selected, err
}

// ToggleSelectPage selects or deselects every record on the current page.
func (s *Screen) ToggleSelectPage() error {
	s.mu.Lock()
	_, _, keys := s.pageLocked()
	err := s.selection.ToggleAllOnPage(keys)
	s.mu.Unlock()
	if err != nil {
		s.notify(model.NoticeWarning, capitalize(err.Error()))
	}
	return err
}

// ClearSelection deselects everything.
func (s *Screen) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
}

// Selected returns the selected keys in selection order.
func (s *Screen) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Keys()
}

// Lookup returns the loaded records with the given keys, in key order.
func (s *Screen) Lookup(keys []string) ([]model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := make(map[string]model.Record, len(s.records))
	for _, r := range s.records {
		index[s.key(r)] = r
	}
	out := make([]model.Record, 0, len(keys))
	var missing []string
	for _, k := range keys {
		r, ok := index[k]
		if !ok {
			missing = append(missing, k)
			continue
		}
		out = append(out, r)
	}
	if len(missing) > 0 {
		return nil, common.NewUserError(
			fmt.Sprintf("record not found: %s", strings.Join(missing, ", ")),
			common.ErrNotFound)
	}
	return out, nil
}

// Perform runs a named action over keys, or over the selection when keys is
// empty. A successful action clears the selection and refetches exactly once.
func (s *Screen) Perform(ctx context.Context, name string, keys []string, params map[string]any) (model.Outcome, error) {
	act, err := s.def.Action(name)
	if err != nil {
		s.notify(model.NoticeError, err.Error())
		return model.Outcome{}, err
	}
	if len(keys) == 0 {
		keys = s.Selected()
	}

	records, err := s.Lookup(keys)
	if err != nil {
		s.notify(model.NoticeError, common.UserMessage(err))
		return model.Outcome{}, err
	}

	outcome, err := s.dispatcher.Perform(ctx, act, records, params)
	if err != nil {
		s.notify(model.NoticeError, common.UserMessage(err))
		return outcome, err
	}

	switch {
	case outcome.Cancelled:
		s.notify(model.NoticeInfo, outcome.Message)
	case !outcome.OK:
		s.notify(model.NoticeError, outcome.Message)
	default:
		s.notify(model.NoticeSuccess, outcome.Message)
		s.ClearSelection()
		if !s.loaded() {
			break
		}
		if err := s.Refresh(ctx); err != nil && !errors.Is(err, common.ErrValidation) {
			slog.Debug("Refetch after action failed", "screen", s.def.Name, "error", err)
		}
	}
	return outcome, nil
}

func (s *Screen) notify(level model.NoticeLevel, msg string) {
	if s.notifier == nil || msg == "" {
		return
	}
	s.notifier.Notify(model.Notice{Level: level, Message: msg})
}

func (s *Screen) title() string {
	if s.def.Title != "" {
		return s.def.Title
	}
	return s.def.Name
}

func copyParams(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
