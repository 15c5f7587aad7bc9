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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type SchemaMetrics interface {
	IncSchemasBuilt()
	IncBuildErrors()
	IncPluginsAttached(plugin string)
	IncCompoundIndexes()
}

var (
	metricsSchemasBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docschema_schemas_built_total",
		Help: "Number of collection schemas assembled",
	}, []string{"collection"})

	metricsBuildErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docschema_schema_build_errors_total",
		Help: "Number of collection schemas that failed to assemble",
	}, []string{"collection"})

	metricsPluginsAttached = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docschema_plugins_attached_total",
		Help: "Number of plugins attached to collection schemas",
	}, []string{"collection", "plugin"})

	metricsCompoundIndexes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docschema_compound_indexes_total",
		Help: "Number of compound indexes requested on collection schemas",
	}, []string{"collection"})
)

var _ SchemaMetrics = &prometheusSchemaMetrics{}

type prometheusSchemaMetrics struct {
	collection string
}

func NewPrometheusSchemaMetrics(collection string) SchemaMetrics {
	return &prometheusSchemaMetrics{
		collection: collection,
	}
}

func (m *prometheusSchemaMetrics) IncSchemasBuilt() {
	metricsSchemasBuilt.WithLabelValues(m.collection).Inc()
}

func (m *prometheusSchemaMetrics) IncBuildErrors() {
	metricsBuildErrors.WithLabelValues(m.collection).Inc()
}

func (m *prometheusSchemaMetrics) IncPluginsAttached(plugin string) {
	metricsPluginsAttached.WithLabelValues(m.collection, plugin).Inc()
}

func (m *prometheusSchemaMetrics) IncCompoundIndexes() {
	metricsCompoundIndexes.WithLabelValues(m.collection).Inc()
}
