// Package view builds the list and calendar presentations of the reading
// collection. Views are read-only: they never mutate the store.
package view

import (
	"fmt"

	"github.com/jwulff/bptrack/internal/bloodpressure"
)

// Order is the list sort direction.
type Order string

const (
	OrderNewestFirst Order = "desc"
	OrderOldestFirst Order = "asc"
)

// ListOptions controls sorting and filtering. An empty Filter shows all.
type ListOptions struct {
	Order  Order
	Filter bloodpressure.Status
}

// Row is one reading with its computed status.
type Row struct {
	Reading bloodpressure.Reading
	Status  bloodpressure.Status
}

// List is the tabular presentation of readings.
type List struct {
	Rows   []Row
	Total  int
	Filter bloodpressure.Status
}

// BuildList sorts by date and time (newest first unless asked otherwise)
// and applies the status filter.
func BuildList(readings []bloodpressure.Reading, opts ListOptions) List {
	sorted := bloodpressure.SortByTimestamp(readings, opts.Order != OrderOldestFirst)

	rows := make([]Row, 0, len(sorted))
	for _, r := range sorted {
		status := r.Status()
		if opts.Filter != "" && status != opts.Filter {
			continue
		}
		rows = append(rows, Row{Reading: r, Status: status})
	}

	return List{Rows: rows, Total: len(readings), Filter: opts.Filter}
}

// Summary returns the footer line, e.g. "Showing 2 of 5 readings (filtered by high status)".
func (l List) Summary() string {
	s := fmt.Sprintf("Showing %d of %d readings", len(l.Rows), l.Total)
	if l.Filter != "" {
		s += fmt.Sprintf(" (filtered by %s status)", l.Filter)
	}
	return s
}

// Notes returns the notes for display, "-" when empty.
func (r Row) Notes() string {
	if r.Reading.Notes == "" {
		return "-"
	}
	return r.Reading.Notes
}

// Pressure formats the reading as "120/80".
func (r Row) Pressure() string {
	return fmt.Sprintf("%d/%d", r.Reading.Systolic, r.Reading.Diastolic)
}
