// Package driven defines the outbound ports of the corpus builder:
// document sources, the processed-ID store, corpus persistence, the
// optional AI refiner, and configuration. Adapters implement these;
// services depend only on the interfaces.
package driven
