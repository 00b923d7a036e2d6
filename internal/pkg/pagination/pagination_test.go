package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTotalPagesIsCeil(t *testing.T) {
	for _, tc := range []struct {
		total int64
		limit int
		pages int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 5, 5},
		{26, 5, 6},
	} {
		p := New(1, tc.limit, tc.total)
		require.Equal(t, tc.pages, p.TotalPages, "total=%d limit=%d", tc.total, tc.limit)
		require.Equal(t, tc.total, p.TotalCount)
	}
}

func TestFirstPageHasNoPrevious(t *testing.T) {
	p := New(1, 10, 35)
	require.Nil(t, p.PreviousPage)
	require.NotNil(t, p.NextPage)
	require.Equal(t, 2, *p.NextPage)
	require.Equal(t, 1, p.CurrentPage)
}

func TestLastPageHasNoNext(t *testing.T) {
	p := New(4, 10, 35)
	require.Nil(t, p.NextPage)
	require.NotNil(t, p.PreviousPage)
	require.Equal(t, 3, *p.PreviousPage)
}

func TestMiddlePageHasBoth(t *testing.T) {
	p := New(2, 10, 35)
	require.Equal(t, 1, *p.PreviousPage)
	require.Equal(t, 3, *p.NextPage)
}

func TestSinglePage(t *testing.T) {
	p := New(1, 10, 7)
	require.Nil(t, p.PreviousPage)
	require.Nil(t, p.NextPage)
	require.Equal(t, 1, p.TotalPages)
}

func TestInvalidInputsClamp(t *testing.T) {
	p := New(0, 0, 30)
	require.Equal(t, 1, p.CurrentPage)
	require.Equal(t, 3, p.TotalPages)
}
