// Package domain contains the core types of the time-quote corpus:
// documents coming out of sources, time matches found in their text,
// the quotes built around those matches, and the corpus that groups
// quotes by minute of day.
package domain
