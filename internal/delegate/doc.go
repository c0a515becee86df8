// Package delegate runs the commands whose real work is done by the external
// Cloudflare client: cache purge and the Lamdera DNS record. Preconditions
// (active profile, resolved zone) are checked before any process is started.
package delegate
