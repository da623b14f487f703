// Package driver provides the Driver entity: availability, assignment bookkeeping
// and the running customer rating.
//
// Key business rules:
//   - A driver toggles between available and offline; assignment makes them busy
//   - Completing a delivery returns the driver to available and counts it once
//   - Ratings are integers 1..5; the stored rating is their mean
package driver
