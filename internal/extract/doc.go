// Package extract parses a saved referee HTML page into a structured record.
//
// Each page carries a referee id in a query-parameter link, the referee's
// name in the first level-5 heading, and a ratings table whose rows describe
// officiated games. Extraction is split into small per-field rules: the
// document-level rules (id, name, table) fail fast with a distinct error so
// the caller can report which precondition a file failed, while the row rule
// returns nothing for malformed rows so header rows and markup noise degrade
// to a skip instead of failing the whole document.
package extract
