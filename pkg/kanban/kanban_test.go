package kanban

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type deal struct {
	name  string
	stage string
}

var dealStages = []string{"New", "Prospect", "Proposal", "Won"}

func TestGroupByStagePreservesStageAndInputOrder(t *testing.T) {
	deals := []deal{
		{name: "a", stage: "Won"},
		{name: "b", stage: "New"},
		{name: "c", stage: "Won"},
		{name: "d", stage: "Prospect"},
	}

	board := GroupByStage(deals, dealStages, func(d deal) string { return d.stage }, "New")

	require.Len(t, board.Columns, 4)
	require.Equal(t, "New", board.Columns[0].Stage)
	require.Equal(t, "Won", board.Columns[3].Stage)

	won, ok := board.Column("Won")
	require.True(t, ok)
	require.Equal(t, []deal{{name: "a", stage: "Won"}, {name: "c", stage: "Won"}}, won.Cards)
}

func TestGroupByStageTotalEqualsInputCount(t *testing.T) {
	deals := []deal{
		{name: "a", stage: "New"},
		{name: "b", stage: "bogus"},
		{name: "c", stage: ""},
		{name: "d", stage: "Proposal"},
	}

	board := GroupByStage(deals, dealStages, func(d deal) string { return d.stage }, "New")
	require.Equal(t, len(deals), board.Total())
}

func TestGroupByStageUnknownStageFallsBack(t *testing.T) {
	deals := []deal{{name: "a", stage: "Negotiation"}}

	board := GroupByStage(deals, dealStages, func(d deal) string { return d.stage }, "New")

	fallback, ok := board.Column("New")
	require.True(t, ok)
	require.Equal(t, 1, fallback.Count())
}

func TestGroupByStageCreatesFallbackColumnWhenAbsent(t *testing.T) {
	deals := []deal{{name: "a", stage: "???"}}

	board := GroupByStage(deals, []string{"Open", "Closed"}, func(d deal) string { return d.stage }, "Backlog")

	require.Len(t, board.Columns, 3)
	backlog, ok := board.Column("Backlog")
	require.True(t, ok)
	require.Equal(t, 1, backlog.Count())
}

func TestGroupByStageEmptyInput(t *testing.T) {
	board := GroupByStage(nil, dealStages, func(d deal) string { return d.stage }, "New")
	require.Equal(t, 0, board.Total())
	require.Len(t, board.Columns, 4)
}
