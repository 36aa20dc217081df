/*
Package observability exposes Prometheus metrics for the Mosaic reducer.

Metrics are fed through domain.LifecycleHooks so the reducer core stays free
of instrumentation concerns: hosts wire Metrics.Hooks() into the engine and
mount promhttp wherever they serve HTTP.
*/
package observability
