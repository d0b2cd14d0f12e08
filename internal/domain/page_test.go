package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trip-planner/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestNewPaginationParams(t *testing.T) {
	tests := []struct {
		name       string
		page       *int
		limit      *int
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", wantPage: 1, wantLimit: 20, wantOffset: 0},
		{name: "explicit", page: intPtr(3), limit: intPtr(10), wantPage: 3, wantLimit: 10, wantOffset: 20},
		{name: "limit capped", page: intPtr(1), limit: intPtr(500), wantPage: 1, wantLimit: 100, wantOffset: 0},
		{name: "non-positive ignored", page: intPtr(0), limit: intPtr(-4), wantPage: 1, wantLimit: 20, wantOffset: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := domain.NewPaginationParams(tc.page, tc.limit)

			assert.Equal(t, tc.wantPage, p.Page)
			assert.Equal(t, tc.wantLimit, p.Limit)
			assert.Equal(t, tc.wantOffset, p.Offset())
		})
	}
}
