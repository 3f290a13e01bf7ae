// Package dataflow is an in-process, partition-parallel implementation of the
// dataflow primitives the graph core is written against: map, equi-join
// (inner and outer), group-by-key, reduce and zip-with-unique-id.
//
// A Collection is an immutable list of partitions. Operators never mutate
// their inputs and are safe to re-execute, so a failed job can simply be
// run again. Each partition of a stage is processed by its own goroutine,
// bounded by the Env parallelism and, when configured, by a shared
// resource.Controller.
//
// Operators that regroup data by key (GroupReduce, CountByKey, the joins)
// hash-partition their inputs with a per-Env seed. The relative order of
// records within a key follows the input collection order, which makes
// "first"/"last" tie-breaks deterministic.
//
// Go methods cannot declare type parameters, so the primitives are package
// functions taking the input collection as their first non-context argument.
package dataflow
