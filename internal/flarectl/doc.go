// Package flarectl wraps the Cloudflare flarectl CLI. Credentials are passed
// through the child's environment, never as arguments.
package flarectl
