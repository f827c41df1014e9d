/*
Package observability provides tools for monitoring the markcheck engine.

Metrics exposes Prometheus collectors fed by the engine's lifecycle hooks:
evaluations by outcome, evaluation latency and check executions by check name.
*/
package observability
