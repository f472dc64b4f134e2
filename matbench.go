// Package matbench loads, aggregates, and compares matrix multiplication
// benchmark results.
//
// # Pipeline
//
// Every report is the same linear pipeline, run once per invocation:
//
//	Load ─► AggregateBySize ─► (ComputeSpeedup) ─► chart.Render / WriteTimeTable
//
// [Load] reads a comma-separated results file with a header row and three
// columns in a fixed order (see [SchemaThreads] and [SchemaConfigurations]).
// [LoadGoBench] reads `go test -bench` output instead.
//
// [AggregateBySize] groups records by a [GroupKey] and reduces the runs at
// each size to a [Point] holding the mean time and summary statistics.
//
// [ComputeSpeedup] divides a baseline group's mean time by each group's mean
// time at the same size. The baseline is usually the single-thread run
// ([DefaultBaseline]).
//
// # Errors
//
// Nothing is retried and no partial result is returned:
//
//   - [*FileNotFoundError]: input path does not exist
//   - [*FormatError]: malformed header, wrong column count, or a value of the
//     wrong type
//   - [*MissingBaselineError]: the baseline has no run at some size
//
// Rendering lives in the chart subpackage. The benchmark runner that produces
// results files lives in the kernel and bench subpackages.
package matbench
