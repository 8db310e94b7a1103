/*
Package observability turns editor lifecycle hooks into Prometheus metrics
and structured log lines.

Both helpers return domain.LifecycleHooks; combine them with
domain.ChainHooks and pass the result to flowdesk.WithLifecycleHooks.
*/
package observability
