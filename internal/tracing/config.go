// Copyright 2025 Tom Barlow
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

package tracing

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
)

// Config configures a Provider.
type Config struct {
	// ServiceName identifies this process in spans and metrics.
	ServiceName string

	// ServiceVersion is the application version.
	ServiceVersion string

	// Console receives one JSON document per finished span. Nil disables
	// span export; spans are still created and sampled.
	Console io.Writer

	// PrettyPrint indents console output.
	PrettyPrint bool

	// Registerer receives the OpenTelemetry metrics. Nil keeps metrics in
	// process without exposing them.
	Registerer prometheus.Registerer
}
