// Package domain contains the core task entities, enumerations, and errors
// of the gateway. It represents the heart of the system, independent of any
// specific transport or delivery mechanism.
package domain
