// Package errors defines the gateway's error taxonomy and maps errors
// to process exit codes and caller-visible messages.
//
// Every gateway failure exits with the same generic code so the exit
// status leaks nothing about why a request was refused; the wrapped
// server's own exit status is the only other code the process ever
// returns. The detailed error kinds exist for operator diagnosis
// (verbose logging) and for tests.
package errors
