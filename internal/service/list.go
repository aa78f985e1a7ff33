package service

import (
	"context"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/query"
)

// Page is one page of a list endpoint
type Page[T any] struct {
	Items      []*T
	Pagination query.Pagination
	Stats      interface{}
}

// agencyIdsByName returns the ids of agencies whose name matches search
func agencyIdsByName(ctx context.Context, agencies DocStore[entity.Agency], search string) ([]string, error) {
	return agencies.FindIds(ctx, bson.M{"name": query.SearchRegex(search)})
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// slugify turns a display name into a url-safe identifier
func slugify(name string) string {
	return strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// pick returns v unless it is empty
func pick(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
