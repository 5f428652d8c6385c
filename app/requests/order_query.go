package requests

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/orderservice/app/models"
	"github.com/shashiranjanraj/orderservice/app/repositories"
)

// ParseOrderFilter reads ?status=&minPrice=&maxPrice=. Absent or empty
// parameters leave their column unconstrained.
func ParseOrderFilter(q url.Values) (repositories.OrderFilter, error) {
	var f repositories.OrderFilter

	if raw := q.Get("status"); raw != "" {
		s, err := models.ParseOrderStatus(raw)
		if err != nil {
			return f, fmt.Errorf("status: %w", err)
		}
		f.Status = &s
	}

	var err error
	if f.MinPrice, err = price(q, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = price(q, "maxPrice"); err != nil {
		return f, err
	}
	return f, nil
}

func price(q url.Values, key string) (*decimal.Decimal, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not a number", key, raw)
	}
	return &d, nil
}
