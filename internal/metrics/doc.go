// Package metrics records pipeline counters in a private Prometheus registry.
//
// gamecat is a short-lived CLI, so nothing is served over HTTP. When a textfile
// path is configured the registry is written in exposition format for the
// node_exporter textfile collector after each command. Every Recorder method is
// safe to call on a nil receiver.
package metrics
