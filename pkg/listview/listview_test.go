package listview

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

type company struct {
	id     string
	name   string
	email  string
	status string
	deals  int
}

func companyConfig() Config[company] {
	return Config[company]{
		Key: func(c company) string { return c.id },
		SearchFields: []func(company) string{
			func(c company) string { return c.name },
			func(c company) string { return c.email },
		},
		FilterFields: map[string]func(company) string{
			"status": func(c company) string { return c.status },
		},
		Columns: []Column[company]{
			{Name: "Name", Display: func(c company) string { return c.name }, Value: func(c company) any { return c.name }},
			{Name: "Deals", Display: func(c company) string { return strconv.Itoa(c.deals) }, Value: func(c company) any { return c.deals }},
		},
	}
}

func sampleCompanies() []company {
	return []company{
		{id: "1", name: "BrightWave", email: "hello@brightwave.com", status: "active", deals: 4},
		{id: "2", name: "Stellar Dynamics", email: "info@stellar.io", status: "inactive", deals: 9},
		{id: "3", name: "NovaDrive", email: "contact@novadrive.com", status: "active", deals: 2},
	}
}

func TestDeriveSearchMatchesAnyConfiguredField(t *testing.T) {
	rows := Derive(companyConfig(), sampleCompanies(), Params{Search: "STELLAR"})
	require.Len(t, rows, 1)
	require.Equal(t, "2", rows[0].Key)

	rows = Derive(companyConfig(), sampleCompanies(), Params{Search: "contact@"})
	require.Len(t, rows, 1)
	require.Equal(t, "NovaDrive", rows[0].Display["Name"])
}

func TestDeriveFilterAllReturnsEverything(t *testing.T) {
	rows := Derive(companyConfig(), sampleCompanies(), Params{
		Filters: map[string]string{"status": FilterAll},
	})
	require.Len(t, rows, 3)
}

func TestDeriveFilterByAbsentValueYieldsEmpty(t *testing.T) {
	rows := Derive(companyConfig(), sampleCompanies(), Params{
		Filters: map[string]string{"status": "archived"},
	})
	require.Empty(t, rows)
}

func TestDeriveSortToggleReversesDistinctValues(t *testing.T) {
	asc := Derive(companyConfig(), sampleCompanies(), Params{SortBy: "Deals", SortOrder: OrderAsc})
	desc := Derive(companyConfig(), sampleCompanies(), Params{SortBy: "Deals", SortOrder: OrderDesc})

	require.Len(t, asc, 3)
	for i := range asc {
		require.Equal(t, asc[i].Key, desc[len(desc)-1-i].Key)
	}
	require.Equal(t, "3", asc[0].Key)
	require.Equal(t, "2", asc[2].Key)
}

func TestDeriveStringSortIsCaseInsensitive(t *testing.T) {
	records := []company{
		{id: "1", name: "zeta"},
		{id: "2", name: "Alpha"},
		{id: "3", name: "beta"},
	}
	rows := Derive(companyConfig(), records, Params{SortBy: "Name", SortOrder: OrderAsc})
	require.Equal(t, []string{"2", "3", "1"}, []string{rows[0].Key, rows[1].Key, rows[2].Key})
}

func TestDeriveIsIdempotent(t *testing.T) {
	params := Params{Search: "a", SortBy: "Name", SortOrder: OrderAsc}
	first := Derive(companyConfig(), sampleCompanies(), params)
	second := Derive(companyConfig(), sampleCompanies(), params)
	require.Equal(t, first, second)
}

func TestDeriveRowsCarryRawBackReference(t *testing.T) {
	rows := Derive(companyConfig(), sampleCompanies(), Params{})
	require.Len(t, rows, 3)
	for _, row := range rows {
		require.Equal(t, row.Key, row.Raw.id)
	}
}

func TestFuzzyFindRanksBestFirst(t *testing.T) {
	records := sampleCompanies()
	got := FuzzyFind(records, "nova", func(c company) string { return c.name })
	require.NotEmpty(t, got)
	require.Equal(t, "NovaDrive", got[0].name)
}
