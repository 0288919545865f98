// Package liststore is the client side of the remote list-oriented store:
// generic typed CRUD over named collections with filter/select queries and
// digest-token concurrency on mutations.
package liststore

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Record is one list item as a loosely-typed field map.
type Record map[string]any

// ID returns the store-assigned item id, or 0 when absent.
func (r Record) ID() int {
	return r.IntField(FieldID)
}

// StringField reads a field as a string, tolerating absence.
func (r Record) StringField(name string) string {
	switch v := r[name].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// IntField reads a field as an int. JSON numbers arrive as float64.
func (r Record) IntField(name string) int {
	switch v := r[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		var n int
		fmt.Sscanf(v, "%d", &n)
		return n
	default:
		return 0
	}
}

// DecimalField reads a field as a decimal amount, tolerating string and
// numeric encodings. Unparsable values read as zero.
func (r Record) DecimalField(name string) decimal.Decimal {
	switch v := r[name].(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// Query narrows a collection read. Select lists field names; Filter is a
// store-side filter expression such as "projectsId eq 12".
type Query struct {
	Select []string
	Filter string
}

// Client is the remote list store seen by the rest of the system. Create
// returns the store-assigned item id.
type Client interface {
	Create(ctx context.Context, collection string, fields Record) (int, error)
	Update(ctx context.Context, collection string, id int, fields Record) error
	Delete(ctx context.Context, collection string, id int) error
	Query(ctx context.Context, collection string, q Query) ([]Record, error)
	GetByID(ctx context.Context, collection string, id int) (Record, error)
}
