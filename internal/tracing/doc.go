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

/*
Package tracing sets up OpenTelemetry for a teemu session.

A Provider owns a tracer provider and a meter provider. Spans from the
dispatcher are written to a console exporter when one is configured, and
session metrics are exposed through the OpenTelemetry Prometheus exporter on
the same registry the dispatcher's collectors use.

	provider, err := tracing.NewProvider(tracing.Config{
	    ServiceName:    "teemu",
	    ServiceVersion: version,
	    Console:        os.Stderr,
	    Registerer:     reg,
	})
	if err != nil {
	    return err
	}
	defer provider.Shutdown(ctx)

	d := dispatch.New(registry, dispatch.WithTracerProvider(provider.TracerProvider()))
*/
package tracing
