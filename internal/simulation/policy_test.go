package simulation

import (
	"testing"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivePolicy(t *testing.T) {
	profile := domain.LeadTimeProfile{AverageDays: 4, MaxDays: 10}

	t.Run("average lead time", func(t *testing.T) {
		p, err := DerivePolicy(profile, domain.LeadTimeAverage, 3, 2)
		require.NoError(t, err)
		assert.Equal(t, 8.0, p.ReorderPoint)
		assert.Equal(t, 180.0, p.OrderQuantity)
		assert.Equal(t, 4.0, p.LeadTimeDays)
		assert.Equal(t, domain.DefaultMinOrderIntervalDays, p.MinOrderIntervalDays)
	})

	t.Run("maximum lead time", func(t *testing.T) {
		p, err := DerivePolicy(profile, domain.LeadTimeMax, 0.5, 2)
		require.NoError(t, err)
		assert.Equal(t, 20.0, p.ReorderPoint)
		assert.Equal(t, 30.0, p.OrderQuantity)
		assert.Equal(t, 10.0, p.LeadTimeDays)
	})

	t.Run("repeated calls are independent", func(t *testing.T) {
		a, err := DerivePolicy(profile, domain.LeadTimeAverage, 1, 2)
		require.NoError(t, err)
		b, err := DerivePolicy(profile, domain.LeadTimeAverage, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, a.ReorderPoint, b.ReorderPoint)
		assert.Equal(t, 2*a.OrderQuantity, b.OrderQuantity)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := DerivePolicy(profile, domain.LeadTimeAverage, 0, 2)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))

		_, err = DerivePolicy(profile, domain.LeadTimeAverage, 1, -1)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))

		_, err = DerivePolicy(profile, "median", 1, 1)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))

		_, err = DerivePolicy(domain.LeadTimeProfile{AverageDays: 5, MaxDays: 2}, domain.LeadTimeAverage, 1, 1)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("warning level", func(t *testing.T) {
		p := domain.NewReorderPolicy(100, 0, 1)
		assert.InDelta(t, 120.0, WarningLevel(p, 0.2), 1e-9)
	})
}
