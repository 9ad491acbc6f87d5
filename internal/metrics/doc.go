// Package metrics records what a binutils invocation did: how long the cargo
// build took, how it ended, how many artifacts matched, and how the proxied
// LLVM tool exited.
//
// Components receive a Recorder through a With* setter and default to
// NoopRecorder, so no call site needs a nil check. When --metrics-file is
// given the CLI swaps in a PrometheusRecorder backed by a private registry
// and writes the registry in text exposition format when the run ends, which
// is what the node_exporter textfile collector picks up:
//
//	reg := prometheus.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	orchestrator := build.NewOrchestrator(runner).WithRecorder(recorder)
//	...
//	_ = metrics.WriteTextfile(path, reg)
package metrics
