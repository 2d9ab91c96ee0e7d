package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srgjo27/raffle_ticket/internal/core/services"
)

func set(numbers ...int) map[int]struct{} {
	s := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		s[n] = struct{}{}
	}
	return s
}

func TestPickNumbers(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		live     map[int]struct{}
		quantity int
		want     []int
	}{
		{name: "skips live numbers", total: 10, live: set(2, 4, 6), quantity: 3, want: []int{1, 3, 5}},
		{name: "sold out", total: 5, live: set(1, 2, 3, 4, 5), quantity: 1, want: []int{}},
		{name: "short result when inventory is low", total: 5, live: set(1, 2), quantity: 5, want: []int{3, 4, 5}},
		{name: "empty pool picks from one", total: 10, live: set(), quantity: 2, want: []int{1, 2}},
		{name: "ignores live numbers outside the range", total: 3, live: set(7, 8), quantity: 3, want: []int{1, 2, 3}},
		{name: "non-positive quantity", total: 3, live: set(), quantity: 0, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.PickNumbers(tt.total, tt.live, tt.quantity)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), tt.quantity)
		})
	}
}

func TestPickNumbers_Deterministic(t *testing.T) {
	live := set(1, 5, 9)

	first := services.PickNumbers(20, live, 6)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, services.PickNumbers(20, live, 6))
	}
}
