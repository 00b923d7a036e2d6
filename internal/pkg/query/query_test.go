package query

import (
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseComparisonOperators(t *testing.T) {
	values, err := url.ParseQuery("price[gt]=50&sort=-price&page=2&limit=5")
	require.NoError(t, err)

	q := Parse(values)

	require.Equal(t, bson.M{"price": bson.M{"$gt": "50"}}, q.Filters)
	require.Equal(t, bson.D{{Key: "price", Value: -1}}, q.SortBy)
	require.Equal(t, int64(5), q.Skip)
	require.Equal(t, int64(5), q.Limit)
	require.Equal(t, 2, q.Page)
}

func TestParseMergesOperatorsOnOneField(t *testing.T) {
	values, err := url.ParseQuery("price[gte]=10&price[lte]=99&status=active")
	require.NoError(t, err)

	q := Parse(values)

	require.Equal(t, bson.M{
		"price":  bson.M{"$gte": "10", "$lte": "99"},
		"status": "active",
	}, q.Filters)
}

func TestParseNeqMapsToNe(t *testing.T) {
	values, _ := url.ParseQuery("status[neq]=inactive&rating[eq]=5")
	q := Parse(values)

	require.Equal(t, bson.M{
		"status": bson.M{"$ne": "inactive"},
		"rating": bson.M{"$eq": "5"},
	}, q.Filters)
}

func TestParseUnknownOperatorIsPlainFilter(t *testing.T) {
	values, _ := url.ParseQuery("price%5Bnear%5D=50")
	q := Parse(values)

	// unknown tokens are not rewritten, the key stays as sent
	require.Equal(t, bson.M{"price[near]": "50"}, q.Filters)
}

func TestParseReservedKeysExcludedFromFilters(t *testing.T) {
	values, _ := url.ParseQuery("sort=name&page=1&limit=10&fields=name&email=a@x.com")
	q := Parse(values)

	require.Equal(t, bson.M{"email": "a@x.com"}, q.Filters)
}

func TestParseSortAndFields(t *testing.T) {
	values, _ := url.ParseQuery("sort=name,-price&fields=name,email,-age")
	q := Parse(values)

	require.Equal(t, bson.D{
		{Key: "name", Value: 1},
		{Key: "price", Value: -1},
	}, q.SortBy)
	require.Equal(t, bson.M{"name": 1, "email": 1, "age": 0}, q.Fields)
}

func TestParsePaginationDefaults(t *testing.T) {
	q := Parse(url.Values{})
	require.Equal(t, 1, q.Page)
	require.Equal(t, int64(10), q.Limit)
	require.Equal(t, int64(0), q.Skip)
}

func TestParseMalformedNumbersCoerceToDefaults(t *testing.T) {
	values, _ := url.ParseQuery("page=abc&limit=-3")
	q := Parse(values)

	require.Equal(t, 1, q.Page)
	require.Equal(t, int64(10), q.Limit)
	require.Equal(t, int64(0), q.Skip)
}

func TestParseSkipArithmetic(t *testing.T) {
	for _, tc := range []struct {
		page, limit int
		skip        int64
	}{
		{1, 10, 0},
		{2, 10, 10},
		{4, 12, 36},
		{3, 7, 14},
	} {
		values := url.Values{}
		values.Set("page", strconv.Itoa(tc.page))
		values.Set("limit", strconv.Itoa(tc.limit))
		q := Parse(values)
		require.Equal(t, tc.skip, q.Skip, "page=%d limit=%d", tc.page, tc.limit)
		require.Equal(t, int64(tc.limit), q.Limit)
	}
}

func TestParseSearchUsesAllowList(t *testing.T) {
	values, _ := url.ParseQuery("search=joy")

	q := Parse(values, "name", "email")
	or, ok := q.Filters["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)

	// without an allow-list the search key is simply dropped
	q = Parse(values)
	require.Empty(t, q.Filters)
}
