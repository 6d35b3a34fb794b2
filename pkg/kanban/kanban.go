// Package kanban buckets records by a stage field for board-style views.
package kanban

// Column holds the cards of one stage, in input order.
type Column[T any] struct {
	Stage string
	Cards []T
}

func (c Column[T]) Count() int { return len(c.Cards) }

// Board is an ordered set of stage columns. Every input record lands in
// exactly one column.
type Board[T any] struct {
	Columns []Column[T]
}

func (b Board[T]) Total() int {
	total := 0
	for _, col := range b.Columns {
		total += len(col.Cards)
	}
	return total
}

// Column returns the column for the given stage, if present.
func (b Board[T]) Column(stage string) (Column[T], bool) {
	for _, col := range b.Columns {
		if col.Stage == stage {
			return col, true
		}
	}
	return Column[T]{}, false
}

// GroupByStage distributes records over the known stages, preserving both
// stage order and input order within each column. Records whose stage is
// unknown (or empty) go to the fallback column, which is created if it is
// not already one of the known stages.
func GroupByStage[T any](records []T, stages []string, stageOf func(T) string, fallback string) Board[T] {
	index := make(map[string]int, len(stages)+1)
	columns := make([]Column[T], 0, len(stages)+1)
	for _, stage := range stages {
		if _, ok := index[stage]; ok {
			continue
		}
		index[stage] = len(columns)
		columns = append(columns, Column[T]{Stage: stage})
	}

	for _, rec := range records {
		stage := stageOf(rec)
		i, ok := index[stage]
		if !ok {
			i, ok = index[fallback]
			if !ok {
				index[fallback] = len(columns)
				columns = append(columns, Column[T]{Stage: fallback})
				i = index[fallback]
			}
		}
		columns[i].Cards = append(columns[i].Cards, rec)
	}

	return Board[T]{Columns: columns}
}
