// Package logging provides the structured logging interface used by the analysis pipeline.
// Components log through Logger so that tests can capture or silence output; the default
// backend is zerolog.
package logging
