package lexer

import "newick/internal/diag"

type Options struct {
	Reporter diag.Reporter // nil: лексер молчит

	// ReportSkipped emits an info diagnostic for every skipped character
	// that is neither ',' nor whitespace.
	ReportSkipped bool
}

// ReporterAdapter адаптирует diag.Bag для использования в лексере
type ReporterAdapter struct {
	Bag *diag.Bag
}

// Reporter returns a diag.Reporter that forwards diagnostics to the adapter's bag.
func (r *ReporterAdapter) Reporter() diag.Reporter {
	return &diag.BagReporter{Bag: r.Bag}
}
