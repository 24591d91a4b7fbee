/*
Copyright 2020, PaySim Labs

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

package server

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	commandCodeLabel = "command_code"
	errorCodeLabel   = "error_code"
)

var (
	connectionCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hsmsimulator_connections_total",
			Help: "number of accepted connections",
		})

	connectionProcessingTimeHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hsmsimulator_connections_processing_seconds",
		Help:    "Time of connection processing",
		Buckets: []float64{0.1, 0.2, 0.5, 1, 10, 60, 3600, 86400},
	})

	commandCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hsmsimulator_commands_total",
			Help: "number of processed commands by command code and error code",
		}, []string{commandCodeLabel, errorCodeLabel})
)

var registerLock = sync.Once{}

// RegisterMetrics registers the simulator metrics.
func RegisterMetrics() {
	registerLock.Do(func() {
		prometheus.MustRegister(connectionCounter)
		prometheus.MustRegister(connectionProcessingTimeHistogram)
		prometheus.MustRegister(commandCounter)
	})
}
