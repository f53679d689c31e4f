package csvfile_test

import (
	"context"
	"strings"
	"testing"

	"github.com/Gunvolt24/grocery/internal/domain"
	"github.com/Gunvolt24/grocery/internal/repo/csvfile"
	"github.com/stretchr/testify/require"
)

const bareQuoteInput = "1,a\"b,1.00\n2,x,1.00\n3,y\n"

func TestEachRow_StopsOnSyntaxError(t *testing.T) {
	var rows []csvfile.Row
	err := csvfile.EachRow(context.Background(), strings.NewReader(bareQuoteInput), func(r csvfile.Row) error {
		rows = append(rows, r)
		return nil
	})

	require.ErrorIs(t, err, domain.ErrMalformedFixture)
	require.Empty(t, rows)
}

func TestEachRecord_ContinuesAfterSyntaxError(t *testing.T) {
	var rows []csvfile.Row
	err := csvfile.EachRecord(context.Background(), strings.NewReader(bareQuoteInput), func(r csvfile.Row) error {
		rows = append(rows, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, 1, rows[0].Line)
	require.ErrorIs(t, rows[0].Err, domain.ErrMalformedFixture)
	require.Nil(t, rows[0].Fields)

	require.Equal(t, 2, rows[1].Line)
	require.NoError(t, rows[1].Err)
	require.Equal(t, []string{"2", "x", "1.00"}, rows[1].Fields)

	require.Equal(t, 3, rows[2].Line)
	require.Equal(t, []string{"3", "y"}, rows[2].Fields)
}
