/*
Copyright 2024 Codenotary Inc. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package querybuilder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/codenotary/docschema/embedded/schema"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var comparisonOperators = map[string]string{
	OpEquals:           "$eq",
	OpNotEquals:        "$ne",
	OpGreaterThan:      "$gt",
	OpGreaterThanEqual: "$gte",
	OpLessThan:         "$lt",
	OpLessThanEqual:    "$lte",
}

var listOperators = map[string]string{
	OpIn:    "$in",
	OpNotIn: "$nin",
	OpAll:   "$all",
}

func (b *Builder) condition(path string, field *schema.Field, op string, value interface{}) (bson.M, error) {
	if mop, ok := comparisonOperators[op]; ok {
		v, err := b.coerce(path, field, value)
		if err != nil {
			return nil, err
		}
		return bson.M{path: bson.M{mop: v}}, nil
	}

	if mop, ok := listOperators[op]; ok {
		items := splitList(value)

		vs := make(bson.A, len(items))
		for i, item := range items {
			v, err := b.coerce(path, field, item)
			if err != nil {
				return nil, err
			}
			vs[i] = v
		}

		return bson.M{path: bson.M{mop: vs}}, nil
	}

	switch op {
	case OpExists:
		exists, err := toBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s in collection %s: %v", ErrInvalidValue, path, b.slug, err)
		}
		return bson.M{path: bson.M{"$exists": exists}}, nil

	case OpContains:
		s := fmt.Sprint(value)
		return bson.M{path: caseInsensitive(s)}, nil

	case OpLike:
		words := strings.Fields(fmt.Sprint(value))
		if len(words) <= 1 {
			return bson.M{path: caseInsensitive(strings.Join(words, ""))}, nil
		}

		and := make(bson.A, len(words))
		for i, w := range words {
			and[i] = bson.M{path: caseInsensitive(w)}
		}
		return bson.M{"$and": and}, nil

	case OpNear:
		near, err := nearQuery(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s in collection %s: %v", ErrInvalidValue, path, b.slug, err)
		}
		return bson.M{path: near}, nil
	}

	return nil, fmt.Errorf("%w: %s on %s in collection %s", ErrUnsupportedOperator, op, path, b.slug)
}

func caseInsensitive(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

// coerce converts query values, which usually arrive as strings, into the
// type stored at field.
func (b *Builder) coerce(path string, field *schema.Field, value interface{}) (interface{}, error) {
	if value == nil || field == nil {
		return value, nil
	}

	typ := field.Type
	if typ == schema.TypeArray && field.Of != nil {
		return b.coerce(path, field.Of, value)
	}

	var v interface{}
	var err error

	switch typ {
	case schema.TypeNumber:
		v, err = toNumber(value)
	case schema.TypeBoolean:
		v, err = toBool(value)
	case schema.TypeDate:
		v, err = toDate(value)
	case schema.TypeObjectID:
		v = toObjectID(value)
	default:
		v = value
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s in collection %s: %v", ErrInvalidValue, path, b.slug, err)
	}

	return v, nil
}

func splitList(value interface{}) []interface{} {
	switch v := value.(type) {
	case string:
		parts := strings.Split(v, ",")
		items := make([]interface{}, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				items = append(items, p)
			}
		}
		return items
	case []string:
		items := make([]interface{}, len(v))
		for i, s := range v {
			items[i] = s
		}
		return items
	}

	if items, ok := asList(value); ok {
		return items
	}

	return []interface{}{value}
}

func toNumber(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case int, int32, int64, float32, float64:
		return v, nil
	case string:
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i, nil
		}
		return strconv.ParseFloat(v, 64)
	}
	return nil, fmt.Errorf("%v is not a number", value)
}

func toBool(value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(v)
	}
	return false, fmt.Errorf("%v is not a boolean", value)
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

func toDate(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case primitive.DateTime:
		return v, nil
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
	}
	return nil, fmt.Errorf("%v is not a date", value)
}

// toObjectID converts hex strings. Any other value is kept, custom ids are
// allowed.
func toObjectID(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok {
		return value
	}

	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return value
	}

	return id
}

// nearQuery reads "lng,lat[,maxDistance[,minDistance]]".
func nearQuery(value interface{}) (bson.M, error) {
	items := splitList(value)
	if len(items) < 2 || len(items) > 4 {
		return nil, fmt.Errorf("near expects longitude, latitude and optional distances")
	}

	nums := make([]float64, len(items))
	for i, item := range items {
		n, err := toNumber(item)
		if err != nil {
			return nil, err
		}

		switch x := n.(type) {
		case int:
			nums[i] = float64(x)
		case int32:
			nums[i] = float64(x)
		case int64:
			nums[i] = float64(x)
		case float32:
			nums[i] = float64(x)
		case float64:
			nums[i] = x
		}
	}

	near := bson.M{
		"$geometry": bson.M{
			"type":        "Point",
			"coordinates": bson.A{nums[0], nums[1]},
		},
	}
	if len(nums) > 2 {
		near["$maxDistance"] = nums[2]
	}
	if len(nums) > 3 {
		near["$minDistance"] = nums[3]
	}

	return bson.M{"$near": near}, nil
}
