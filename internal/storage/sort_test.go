package storage

import (
	"errors"
	"testing"
)

func TestOrderClause(t *testing.T) {
	t.Run("accepts allow-listed pairs", func(t *testing.T) {
		clause, err := OrderClause("title", "asc")
		if err != nil {
			t.Fatalf("OrderClause failed: %v", err)
		}
		if clause != "title ASC" {
			t.Errorf("expected %q, got %q", "title ASC", clause)
		}

		clause, err = OrderClause("id", "desc")
		if err != nil {
			t.Fatalf("OrderClause failed: %v", err)
		}
		if clause != "id DESC" {
			t.Errorf("expected %q, got %q", "id DESC", clause)
		}
	})

	t.Run("rejects anything off the allow-list", func(t *testing.T) {
		cases := []struct{ field, order string }{
			{"user_id", "asc"},
			{"title", "ascending"},
			{"id; DROP TABLE reviews", "desc"},
			{"", ""},
			{"ID", "ASC"}, // case-sensitive on purpose
		}
		for _, c := range cases {
			if _, err := OrderClause(c.field, c.order); !errors.Is(err, ErrInvalidSortSpec) {
				t.Errorf("OrderClause(%q, %q): expected ErrInvalidSortSpec, got %v", c.field, c.order, err)
			}
		}
	})
}
