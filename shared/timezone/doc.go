// Package timezone centralizes time handling in the configured application
// timezone. Derived analytics that must be day-stable (the visit fingerprint)
// deliberately bypass this package and use UTC.
package timezone
