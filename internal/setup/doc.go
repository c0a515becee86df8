// Package setup handles interactive and shell-level setup: detecting the
// user's shell, installing the eval wrapper into RC files, and collecting
// profile fields through a terminal form.
package setup
