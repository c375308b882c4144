// Package testutil contains fluent builders for conversation histories and
// sessions used across the test suites. Not for production use.
package testutil
