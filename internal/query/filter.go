package query

import (
	"regexp"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"gorm.io/gorm"

	"github.com/mbeoliero/realty/internal/config"
)

// Related is a search alternative matching rows whose Field is one of Ids.
// Ids come from a sub-query on another collection, e.g. agencies by name.
type Related struct {
	Field string
	Ids   []string
}

// Filter describes a list query independent of the store
type Filter struct {
	Search       string
	SearchFields []string
	Related      []Related
	Status       string
	StatusField  string
	StatusMatch  string
	Equals       map[string]interface{}
}

// NewFilter starts a filter from list params
func NewFilter(p ListParams, opts Options, searchFields ...string) *Filter {
	return &Filter{
		Search:       strings.TrimSpace(p.Search),
		SearchFields: searchFields,
		Status:       strings.TrimSpace(p.Status),
		StatusField:  "status",
		StatusMatch:  opts.StatusMatch,
		Equals:       map[string]interface{}{},
	}
}

// Eq adds an exact-match condition AND-ed with everything else; empty values are ignored
func (f *Filter) Eq(field string, value interface{}) *Filter {
	if s, ok := value.(string); ok && s == "" {
		return f
	}
	f.Equals[field] = value
	return f
}

// AddRelated adds a sub-query alternative to the search
func (f *Filter) AddRelated(field string, ids []string) *Filter {
	if len(ids) > 0 {
		f.Related = append(f.Related, Related{Field: field, Ids: ids})
	}
	return f
}

// HasSearch reports whether a free-text search was requested
func (f *Filter) HasSearch() bool {
	return f.Search != ""
}

func (f *Filter) fuzzyStatus() bool {
	return f.StatusMatch == config.StatusMatchFuzzy
}

// SearchRegex is the case-insensitive substring pattern used for search
func SearchRegex(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

// BSON renders the filter for the document store
func (f *Filter) BSON() bson.M {
	m := bson.M{}
	for k, v := range f.Equals {
		m[k] = v
	}

	var or []bson.M
	if f.HasSearch() {
		for _, field := range f.SearchFields {
			or = append(or, bson.M{field: SearchRegex(f.Search)})
		}
		for _, r := range f.Related {
			or = append(or, bson.M{r.Field: bson.M{"$in": r.Ids}})
		}
	}

	if f.Status != "" {
		if f.fuzzyStatus() {
			or = append(or, bson.M{f.StatusField: SearchRegex(f.Status)})
		} else {
			m[f.StatusField] = bson.M{"$regex": "^" + regexp.QuoteMeta(f.Status) + "$", "$options": "i"}
		}
	}

	if len(or) > 0 {
		m["$or"] = or
	}
	return m
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// GormScope renders the filter for the relational store; field names are column names
func (f *Filter) GormScope() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		keys := make([]string, 0, len(f.Equals))
		for k := range f.Equals {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			db = db.Where(k+" = ?", f.Equals[k])
		}

		var conds []string
		var args []interface{}
		if f.HasSearch() {
			for _, field := range f.SearchFields {
				conds = append(conds, "LOWER("+field+") LIKE ?")
				args = append(args, likePattern(f.Search))
			}
			for _, r := range f.Related {
				conds = append(conds, r.Field+" IN ?")
				args = append(args, r.Ids)
			}
		}

		if f.Status != "" {
			if f.fuzzyStatus() {
				conds = append(conds, "LOWER("+f.StatusField+") LIKE ?")
				args = append(args, likePattern(f.Status))
			} else {
				db = db.Where("LOWER("+f.StatusField+") = ?", strings.ToLower(f.Status))
			}
		}

		if len(conds) > 0 {
			db = db.Where("("+strings.Join(conds, " OR ")+")", args...)
		}
		return db
	}
}
