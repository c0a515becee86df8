// Package doctor runs environment diagnostics for the doctor command.
package doctor
