// Package logger records shell events as newline delimited JSON and builds
// reports from them.
package logger
