package storage

import "errors"

// ErrInvalidSortSpec is returned when a sort field or order falls outside
// the allow-list. The offending value is never interpolated into a query.
var ErrInvalidSortSpec = errors.New("invalid sort field or order")

var sortColumns = map[string]string{
	"id":    "id",
	"date":  "date",
	"title": "title",
}

var sortOrders = map[string]string{
	"asc":  "ASC",
	"desc": "DESC",
}

// OrderClause maps a (field, order) pair to a SQL ORDER BY clause body.
// Only values drawn from the fixed sets {id, date, title} and {asc, desc}
// are accepted; anything else fails with ErrInvalidSortSpec before a query
// is built. Shared by both storage backends.
func OrderClause(field, order string) (string, error) {
	column, ok := sortColumns[field]
	if !ok {
		return "", ErrInvalidSortSpec
	}
	direction, ok := sortOrders[order]
	if !ok {
		return "", ErrInvalidSortSpec
	}
	return column + " " + direction, nil
}
