// Package match ranks catalog documents against normalized topics.
//
// Scoring is multi-factor: verbatim keyword hits weighted by keyword length,
// expansion-table matches, word-boundary title and description hits, and a
// publication-year recency bonus. The Selector runs the scorer over both
// catalog populations with different acceptance floors (curated entries need a
// positive keyword component; the noisier bulk catalog also admits strong
// title or description evidence), merges by document identifier, and keeps the
// top eight by total score with a stable ordering for ties.
//
// When the algorithmic result is weak the Escalator assembles up to twenty
// bulk candidates biased toward matching topic categories and recent
// identifiers, and asks an external oracle which are relevant. Oracle failures
// of any kind degrade to "no additional candidates"; escalation never returns
// an error.
package match
