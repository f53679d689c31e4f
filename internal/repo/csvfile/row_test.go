package csvfile_test

import (
	"testing"

	"github.com/Gunvolt24/grocery/internal/domain"
	"github.com/Gunvolt24/grocery/internal/repo/csvfile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseRow_Pairs(t *testing.T) {
	order, err := csvfile.ParseRow([]string{"1", "Slivered Almonds", "22.88", "Wholewheat flour", "1.93", "Grape Seed Oil", "74.9"})
	require.NoError(t, err)
	require.Equal(t, 1, order.ID())
	require.Equal(t, 3, order.Len())
	require.True(t, order.Products()["Grape Seed Oil"].Equal(decimal.RequireFromString("74.90")))
}

func TestParseRow_EmptyOrder(t *testing.T) {
	order, err := csvfile.ParseRow([]string{"13"})
	require.NoError(t, err)
	require.Equal(t, 13, order.ID())
	require.Zero(t, order.Len())
	require.True(t, order.Total().IsZero())
}

func TestParseRow_Malformed(t *testing.T) {
	cases := map[string][]string{
		"empty record":    {},
		"non-integer id":  {"abc", "banana", "1.99"},
		"odd fields":      {"2", "banana", "1.99", "cracker"},
		"bad price":       {"3", "banana", "one dollar"},
		"duplicate names": {"4", "banana", "1.99", "banana", "2.00"},
	}

	for name, record := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := csvfile.ParseRow(record)
			require.Error(t, err)
			require.ErrorIs(t, err, domain.ErrMalformedFixture)
			require.False(t, domain.IsNotFound(err))
		})
	}
}
