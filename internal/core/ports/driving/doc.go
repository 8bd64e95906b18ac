// Package driving defines the inbound ports of the corpus builder, the
// operations the CLI invokes on the core services.
package driving
