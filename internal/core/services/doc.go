// Package services implements the driving ports: the scrape
// orchestrator that turns source documents into time-keyed quotes,
// the merge service that combines corpora, and corpus statistics.
package services
