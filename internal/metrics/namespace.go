// Package metrics holds the Prometheus collectors of the storefront service.
package metrics

// Namespace prefixes every storefront metric.
const Namespace = "storefront"
