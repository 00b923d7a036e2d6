package query

import (
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// operators maps the query-string comparison tokens onto their Mongo
// operator keys, so ?price[gt]=50 becomes {price: {$gt: "50"}}.
var operators = map[string]string{
	"gt":  "$gt",
	"gte": "$gte",
	"lt":  "$lt",
	"lte": "$lte",
	"eq":  "$eq",
	"neq": "$ne",
}

// reserved keys are query-control directives, never filter predicates
var reserved = map[string]bool{
	"sort":   true,
	"page":   true,
	"limit":  true,
	"fields": true,
	"search": true,
}

// Query is the translated form of a list request's query string: a filter
// document plus sort, projection and pagination directives. Built fresh per
// request, never persisted.
type Query struct {
	Filters bson.M
	SortBy  bson.D
	Fields  bson.M
	Page    int
	Skip    int64
	Limit   int64
}

// Parse translates a raw query-string mapping into a Query. searchFields is
// an allow-list of fields matched by the free-text ?search= parameter; with
// an empty allow-list the search parameter is ignored. Malformed numeric
// input coerces to defaults, the read path never fails here.
func Parse(values url.Values, searchFields ...string) *Query {
	q := &Query{Filters: bson.M{}}

	for key := range values {
		if reserved[key] {
			continue
		}
		value := values.Get(key)

		// field[op] form
		if open := strings.IndexByte(key, '['); open > 0 && strings.HasSuffix(key, "]") {
			field := key[:open]
			token := key[open+1 : len(key)-1]
			if op, ok := operators[token]; ok {
				sub, ok := q.Filters[field].(bson.M)
				if !ok {
					sub = bson.M{}
					q.Filters[field] = sub
				}
				sub[op] = value
				continue
			}
		}

		q.Filters[key] = value
	}

	if search := values.Get("search"); search != "" && len(searchFields) > 0 {
		pattern := primitive.Regex{Pattern: search, Options: "i"}
		or := make(bson.A, 0, len(searchFields))
		for _, field := range searchFields {
			or = append(or, bson.M{field: pattern})
		}
		q.Filters["$or"] = or
	}

	if sort := values.Get("sort"); sort != "" {
		for _, key := range strings.Split(sort, ",") {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			direction := 1
			if strings.HasPrefix(key, "-") {
				direction = -1
				key = key[1:]
			}
			q.SortBy = append(q.SortBy, bson.E{Key: key, Value: direction})
		}
	}

	if fields := values.Get("fields"); fields != "" {
		q.Fields = bson.M{}
		for _, field := range strings.Split(fields, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			if strings.HasPrefix(field, "-") {
				q.Fields[field[1:]] = 0
			} else {
				q.Fields[field] = 1
			}
		}
	}

	q.Page = positiveInt(values.Get("page"), DefaultPage)
	limit := positiveInt(values.Get("limit"), DefaultLimit)
	q.Limit = int64(limit)
	q.Skip = int64(q.Page-1) * q.Limit

	return q
}

// FindOptions builds the driver options for the paged read described by q.
func (q *Query) FindOptions() *options.FindOptions {
	opts := options.Find().SetSkip(q.Skip).SetLimit(q.Limit)
	if len(q.SortBy) > 0 {
		opts.SetSort(q.SortBy)
	}
	if len(q.Fields) > 0 {
		opts.SetProjection(q.Fields)
	}
	return opts
}

func positiveInt(raw string, defaultValue int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return defaultValue
	}
	return n
}
