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
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DatabaseMetrics interface {
	AddIndexesCreated(n int)
	ObserveQuery(kind string, d time.Duration)
}

var (
	metricsIndexesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docschema_indexes_created_total",
		Help: "Number of indexes created on the database",
	}, []string{"collection"})

	metricsQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "docschema_query_duration_seconds",
		Help:    "Duration of paginated queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection", "kind"})
)

var _ DatabaseMetrics = &prometheusDatabaseMetrics{}

type prometheusDatabaseMetrics struct {
	collection string
}

func NewPrometheusDatabaseMetrics(collection string) DatabaseMetrics {
	return &prometheusDatabaseMetrics{
		collection: collection,
	}
}

func (m *prometheusDatabaseMetrics) AddIndexesCreated(n int) {
	metricsIndexesCreated.WithLabelValues(m.collection).Add(float64(n))
}

func (m *prometheusDatabaseMetrics) ObserveQuery(kind string, d time.Duration) {
	metricsQueryDuration.WithLabelValues(m.collection, kind).Observe(d.Seconds())
}
