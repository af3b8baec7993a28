package grid

import (
	"testing"

	"github.com/Veraticus/paydesk/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestApplySort_StableAscending(t *testing.T) {
	records := []model.Record{
		{"k": 2.0, "id": "a"},
		{"k": 1.0, "id": "b"},
		{"k": 1.0, "id": "c"},
	}

	got := ApplySort(records, &SortSpec{Key: "k", Direction: Asc})

	assert.Equal(t, []string{"b", "c", "a"}, keysOf(got, "id"))
	// Input order is untouched.
	assert.Equal(t, []string{"a", "b", "c"}, keysOf(records, "id"))
}

func TestApplySort_DescendingKeepsTieOrder(t *testing.T) {
	records := []model.Record{
		{"k": 1.0, "id": "a"},
		{"k": 2.0, "id": "b"},
		{"k": 1.0, "id": "c"},
	}

	got := ApplySort(records, &SortSpec{Key: "k", Direction: Desc})

	assert.Equal(t, []string{"b", "a", "c"}, keysOf(got, "id"))
}

func TestApplySort_NilSpecPreservesOrder(t *testing.T) {
	records := []model.Record{{"id": "z"}, {"id": "a"}}
	assert.Equal(t, []string{"z", "a"}, keysOf(ApplySort(records, nil), "id"))
}

func TestApplySort_MissingValuesFirst(t *testing.T) {
	records := []model.Record{
		{"name": "beta", "id": "1"},
		{"id": "2"},
		{"name": "alpha", "id": "3"},
		{"name": "", "id": "4"},
	}

	got := ApplySort(records, &SortSpec{Key: "name", Direction: Asc})

	assert.Equal(t, []string{"2", "4", "3", "1"}, keysOf(got, "id"))
}

func TestApplySort_NumericNotLexical(t *testing.T) {
	records := []model.Record{
		{"amount": 100.0, "id": "a"},
		{"amount": 9.0, "id": "b"},
		{"amount": "20", "id": "c"},
	}

	got := ApplySort(records, &SortSpec{Key: "amount", Direction: Asc})

	assert.Equal(t, []string{"b", "c", "a"}, keysOf(got, "id"))
}

func TestSetSortCycle(t *testing.T) {
	records := []model.Record{
		{"k": 2.0, "id": "a"},
		{"k": 1.0, "id": "b"},
		{"k": 1.0, "id": "c"},
	}
	ctrl := NewTableControl(nil)

	ctrl.SetSort("k")
	assert.Equal(t, &SortSpec{Key: "k", Direction: Asc}, ctrl.Sort())
	assert.Equal(t, []string{"b", "c", "a"}, keysOf(ApplySort(records, ctrl.Sort()), "id"))

	ctrl.SetSort("k")
	assert.Equal(t, &SortSpec{Key: "k", Direction: Desc}, ctrl.Sort())
	assert.Equal(t, []string{"a", "b", "c"}, keysOf(ApplySort(records, ctrl.Sort()), "id"))

	ctrl.SetSort("k")
	assert.Nil(t, ctrl.Sort())
	assert.Equal(t, []string{"a", "b", "c"}, keysOf(ApplySort(records, ctrl.Sort()), "id"))
}

func TestParseSortSpec(t *testing.T) {
	assert.Nil(t, ParseSortSpec(""))
	assert.Equal(t, &SortSpec{Key: "amount", Direction: Asc}, ParseSortSpec("amount"))
	assert.Equal(t, &SortSpec{Key: "amount", Direction: Desc}, ParseSortSpec("amount:DESC"))
}

func TestDerive_FilterThenSort(t *testing.T) {
	got := Derive(testRecords(), FilterMap{"status": "success"}, testColumns(), &SortSpec{Key: "amount", Direction: Asc})
	assert.Equal(t, "T3,T2", ids(got))
}

func keysOf(records []model.Record, field string) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Text(field)
	}
	return out
}
