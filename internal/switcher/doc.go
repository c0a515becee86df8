// Package switcher implements use, toggle, list, current and add over the
// profile store. Mutations are computed in memory and saved once.
package switcher
