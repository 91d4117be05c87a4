// SPDX-License-Identifier: MPL-2.0

// Package ingest drives the observation sync loop: for each configured
// element it resolves the time window that is missing from the metric
// store, fetches the observations from the Frost API, and pushes them to
// Promscale as a labeled timeseries.
//
// A run keeps going when individual elements fail and reports the
// accumulated damage as a RunError at the end, so one misbehaving series
// never starves the others.
package ingest
