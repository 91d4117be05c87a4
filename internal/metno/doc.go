// SPDX-License-Identifier: MPL-2.0

// Package metno is a client for the MET Norway Frost API
// (https://frost.met.no), which serves quality-controlled weather
// observations for Norwegian measurement stations.
//
// The client covers the two read endpoints the sync pipeline needs:
// listing the time series available for a sensor (AvailableTimeSeries)
// and fetching observed values for one element over a time window
// (Observations). Responses can optionally be cached in memory with a
// bounded TTL to stay friendly to the API's rate limits.
package metno
