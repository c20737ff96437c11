// Package oaserrors provides structured error types for the apistic library.
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors.
//
// # Error Types
//
//   - [ParseError]: YAML/JSON decoding failures and structural issues
//   - [ReferenceError]: local $ref resolution failures and circular references
//   - [ConversionError]: version normalization failures
//   - [ComparisonError]: malformed schema fragments met during comparison
//   - [ResourceLimitError]: depth and size limits
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrConversion]: Matches any [ConversionError]
//   - [ErrComparison]: Matches any [ComparisonError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// Most errors in the analysis core are recovered locally: conversion errors
// fall back to the best available document and comparison errors count as
// "not equivalent". They are still surfaced through these types so callers
// can inspect them in results and logs.
package oaserrors
