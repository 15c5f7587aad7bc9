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
package paginate

import "go.mongodb.org/mongo-driver/bson"

// Result is one page of documents plus the metadata needed to walk the rest.
// PrevPage and NextPage are zero when there is no such page.
type Result struct {
	Docs          []bson.M `json:"docs"`
	TotalDocs     int64    `json:"totalDocs"`
	Limit         int      `json:"limit"`
	TotalPages    int      `json:"totalPages"`
	Page          int      `json:"page"`
	PagingCounter int      `json:"pagingCounter"`
	HasPrevPage   bool     `json:"hasPrevPage"`
	HasNextPage   bool     `json:"hasNextPage"`
	PrevPage      int      `json:"prevPage,omitempty"`
	NextPage      int      `json:"nextPage,omitempty"`
}

// NewResult computes page metadata. A non positive limit describes a count
// without documents: one page, no neighbours.
func NewResult(docs []bson.M, total int64, limit, page int) *Result {
	if docs == nil {
		docs = []bson.M{}
	}

	if limit <= 0 {
		return &Result{
			Docs:          docs,
			TotalDocs:     total,
			Limit:         0,
			TotalPages:    1,
			Page:          1,
			PagingCounter: 1,
		}
	}

	if page < 1 {
		page = 1
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}

	r := &Result{
		Docs:          docs,
		TotalDocs:     total,
		Limit:         limit,
		TotalPages:    totalPages,
		Page:          page,
		PagingCounter: (page-1)*limit + 1,
		HasPrevPage:   page > 1,
		HasNextPage:   page < totalPages,
	}

	if r.HasPrevPage {
		r.PrevPage = page - 1
	}
	if r.HasNextPage {
		r.NextPage = page + 1
	}

	return r
}
