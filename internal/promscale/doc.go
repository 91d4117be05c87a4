// SPDX-License-Identifier: MPL-2.0

// Package promscale is a client for a Promscale instance, the Prometheus
// remote-storage layer backed by TimescaleDB.
//
// The client covers the two operations the sync pipeline needs: pushing a
// labeled timeseries through the JSON write endpoint (Write) and asking the
// PromQL query endpoint for the time of the newest stored sample of a
// metric (LastTimestamp). Deployments fronted by a self-signed ingress can
// pin a CA bundle or, matching the original deployment, skip verification.
package promscale
