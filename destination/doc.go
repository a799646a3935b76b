// Package destination provides the built-in LoggerDestination implementations.
//
// Memory retains cloned entries in-process and is intended for tests and
// inspection. File and NATS copy each entry and hand it to a background
// worker over a bounded queue so the training goroutine never blocks on
// I/O; when a queue is full the entry is dropped and reported, never
// awaited. Prometheus exports logged scalar values as gauges for scraping.
//
// All destinations treat the LogData they receive as borrowed: anything
// retained past the LogData call is cloned first.
package destination
