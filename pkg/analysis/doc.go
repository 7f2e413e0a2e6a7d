// Package analysis holds the text metrics behind docsense: sentiment,
// keyword frequency, readability and basic statistics.
//
// Every function here is pure. None of them touch storage, so they can be
// called directly on arbitrary text or composed by core.Service for stored
// documents.
//
// Two tokenizers coexist on purpose and must not be merged:
//   - keyword tokens are runs of ASCII letters at least three long;
//   - readability and statistics count every Unicode word run.
package analysis
