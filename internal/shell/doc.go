// Package shell provides shell integration for profile activation.
// A child process cannot change its parent shell's environment, so activation
// prints export statements (POSIX or fish) for the shell to eval, and writes
// the same variables to a credential env file. HookSnippet returns the `cfs`
// wrapper function that performs the eval.
package shell
