/*
Package observability provides tools for monitoring the planner.

It includes Prometheus metrics fed by lifecycle hooks and the result cache,
structured logging hooks, and a way to chain several sets of hooks together.
*/
package observability
