package commands

import (
	"context"

	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/ports"
)

const minFilterCapacity = 10_000

// LoadCodeFilter builds a code filter holding every code issued so far, sized for the
// current count to double.
func LoadCodeFilter(ctx context.Context, repo ports.CouponRepository) (*coupon.CodeFilter, error) {
	codes, err := repo.ListCodes(ctx)
	if err != nil {
		return nil, err
	}

	filter := coupon.NewCodeFilter(uint(max(2*len(codes), minFilterCapacity)))
	for _, code := range codes {
		filter.Add(code)
	}
	return filter, nil
}
