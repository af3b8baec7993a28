package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/paydesk/internal/backend"
	"github.com/Veraticus/paydesk/internal/common"
	"github.com/Veraticus/paydesk/internal/grid"
	"github.com/Veraticus/paydesk/internal/model"
	"github.com/Veraticus/paydesk/internal/scheduler"
	"github.com/Veraticus/paydesk/internal/screen"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePairs(t *testing.T) {
	tests := []struct {
		want    map[string]any
		name    string
		pairs   []string
		wantErr bool
	}{
		{
			name:  "empty",
			pairs: nil,
			want:  map[string]any{},
		},
		{
			name:  "values keep equals signs",
			pairs: []string{"agent=ag01", "note=a=b"},
			want:  map[string]any{"agent": "ag01", "note": "a=b"},
		},
		{
			name:  "empty value allowed",
			pairs: []string{"status="},
			want:  map[string]any{"status": ""},
		},
		{
			name:    "missing equals",
			pairs:   []string{"agent"},
			wantErr: true,
		},
		{
			name:    "missing key",
			pairs:   []string{" =x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePairs(tt.pairs, "param")
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListParams(t *testing.T) {
	catalog := screen.NewCatalog()
	deposits, err := catalog.Get("deposits")
	require.NoError(t, err)
	mutations, err := catalog.Get("mutations")
	require.NoError(t, err)

	now := time.Date(2024, 5, 7, 13, 0, 0, 0, time.UTC)

	t.Run("dated screen defaults to today", func(t *testing.T) {
		params, err := listParams(deposits, nil, now)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"datefrom": "2024-05-07", "dateto": "2024-05-07"}, params)
	})

	t.Run("operator params win", func(t *testing.T) {
		params, err := listParams(deposits, []string{"datefrom=2024-05-01", "merchant=M1"}, now)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"datefrom": "2024-05-01",
			"dateto":   "2024-05-07",
			"merchant": "M1",
		}, params)
	})

	t.Run("undated screen", func(t *testing.T) {
		params, err := listParams(mutations, []string{"account=123"}, now)
		require.NoError(t, err)
		assert.NotContains(t, params, "datefrom")
		assert.Equal(t, "123", params["account"])
	})
}

func TestApplyListOptions_RejectsUnknownColumns(t *testing.T) {
	catalog := screen.NewCatalog()
	def, err := catalog.Get("withdrawals")
	require.NoError(t, err)

	tests := []struct {
		name string
		opts listOptions
	}{
		{name: "filter", opts: listOptions{filters: []string{"nope=1"}}},
		{name: "sort", opts: listOptions{sort: "nope:desc"}},
		{name: "hide", opts: listOptions{hide: []string{"nope"}}},
		{name: "malformed filter", opts: listOptions{filters: []string{"status"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scr := screen.New(def, screen.Deps{})
			err := applyListOptions(scr, tt.opts)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestApplyListOptions_SetsControls(t *testing.T) {
	catalog := screen.NewCatalog()
	def, err := catalog.Get("withdrawals")
	require.NoError(t, err)
	scr := screen.New(def, screen.Deps{})

	require.NoError(t, applyListOptions(scr, listOptions{
		filters:  []string{"status=pending"},
		hide:     []string{"notes"},
		sort:     "amount:desc",
		pageSize: 3,
	}))

	view := scr.View()
	assert.Equal(t, &grid.SortSpec{Key: "amount", Direction: grid.Desc}, view.Sort)
	assert.Equal(t, 3, view.PageSize)
	for _, c := range view.Columns {
		assert.NotEqual(t, "notes", c.Key)
	}
}

type stubFetcher struct {
	params []map[string]any
}

func (f *stubFetcher) FetchList(_ context.Context, _ backend.Endpoint, params map[string]any) (backend.Envelope, error) {
	f.params = append(f.params, params)
	return backend.Envelope{Status: "ok", Records: []model.RawRecord{{"transactionid": "T1", "amount": "10"}}}, nil
}

func (f *stubFetcher) PerformAction(context.Context, backend.Endpoint, map[string]any) (backend.Envelope, error) {
	return backend.Envelope{Status: "ok"}, nil
}

func TestWatchTarget_FollowsTheDay(t *testing.T) {
	catalog := screen.NewCatalog()
	def, err := catalog.Get("deposits")
	require.NoError(t, err)

	fetcher := &stubFetcher{}
	scr := screen.New(def, screen.Deps{Backend: fetcher})

	day := time.Date(2024, 5, 7, 23, 59, 0, 0, time.UTC)
	target := &watchTarget{
		screen: scr,
		extra:  map[string]any{"merchant": "M1"},
		now:    func() time.Time { return day },
	}

	require.NoError(t, target.Refresh(context.Background()))
	day = day.Add(2 * time.Minute)
	require.NoError(t, target.Refresh(context.Background()))

	require.Len(t, fetcher.params, 2)
	assert.Equal(t, "2024-05-07", fetcher.params[0]["datefrom"])
	assert.Equal(t, "2024-05-08", fetcher.params[1]["datefrom"])
	assert.Equal(t, "M1", fetcher.params[1]["merchant"])
	assert.Equal(t, 1, target.View().TotalCount)
}

func TestFormatTick(t *testing.T) {
	at := time.Date(2024, 5, 7, 9, 30, 15, 0, time.UTC)

	t.Run("success with totals", func(t *testing.T) {
		line := formatTick(scheduler.Tick{
			At: at,
			View: screen.View{
				Title:      "Withdrawals",
				TotalCount: 1200,
				Columns:    []model.ColumnSpec{{Key: "amount", Label: "Amount"}, {Key: "fee", Label: "Fee"}},
				Totals: map[string]decimal.Decimal{
					"fee":    decimal.RequireFromString("12.5"),
					"amount": decimal.RequireFromString("1500"),
				},
			},
		})
		assert.Contains(t, line, "09:30:15 Withdrawals: 1,200 records")
		assert.Contains(t, line, "Amount 1,500.00, Fee 12.50")
	})

	t.Run("error", func(t *testing.T) {
		line := formatTick(scheduler.Tick{At: at, Err: common.NewUserError("Unable to load withdrawals", errors.New("boom"))})
		assert.Contains(t, line, "09:30:15")
		assert.Contains(t, line, "Unable to load withdrawals")
	})
}
