// Package profile defines the credential profile data model: named Cloudflare
// credential sets, the ordered store that holds them, and the active/previous
// pointers used for switching and toggling.
package profile
