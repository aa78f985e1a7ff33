package servicetest

import (
	"fmt"
	"reflect"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
)

// Match evaluates the subset of the Mongo query language the services emit:
// equality, $regex with $options, $in and $or.
func Match(doc bson.M, filter bson.M) bool {
	for key, cond := range filter {
		if key == "$or" {
			if !matchAny(doc, cond) {
				return false
			}
			continue
		}
		if !matchField(doc[key], cond) {
			return false
		}
	}
	return true
}

func matchAny(doc bson.M, cond interface{}) bool {
	alts, ok := cond.([]bson.M)
	if !ok {
		return false
	}
	for _, alt := range alts {
		if Match(doc, alt) {
			return true
		}
	}
	return false
}

func matchField(value interface{}, cond interface{}) bool {
	ops, ok := cond.(bson.M)
	if !ok {
		return reflect.DeepEqual(value, cond)
	}

	if pattern, ok := ops["$regex"].(string); ok {
		if opt, _ := ops["$options"].(string); opt == "i" {
			pattern = "(?i)" + pattern
		}
		s, ok := value.(string)
		return ok && regexp.MustCompile(pattern).MatchString(s)
	}

	if in, ok := ops["$in"]; ok {
		rv := reflect.ValueOf(in)
		for i := 0; i < rv.Len(); i++ {
			if fmt.Sprint(rv.Index(i).Interface()) == fmt.Sprint(value) {
				return true
			}
		}
		return false
	}

	return reflect.DeepEqual(value, cond)
}

// toM renders a document the way the store would see it
func toM(doc interface{}) bson.M {
	b, err := bson.Marshal(doc)
	if err != nil {
		panic(err)
	}
	var m bson.M
	if err := bson.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	return m
}
