// Copyright 2026 The Bda Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Package-level metrics: every Catalog instance in a process shares one
// set of counters, the same way a single bdad process would, and the
// same way libaf/healthserver expects to scrape one /metrics registry.
var (
	putCreateTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bda_catalog_put_create_total",
		Help: "Number of Put calls that created a new resource.",
	})
	putUpdateTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bda_catalog_put_update_total",
		Help: "Number of Put calls that updated an existing resource.",
	})
	putNoopTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bda_catalog_put_noop_total",
		Help: "Number of Put calls whose new record equaled the prior one.",
	})
	delTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bda_catalog_del_total",
		Help: "Number of Del calls that removed a resource.",
	})
	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "bda_catalog_search_duration_seconds",
		Help: "Latency of Catalog.Search calls.",
	})
)
