// Package tracker values a portfolio of stocks day by day in a single
// reporting currency, next to benchmark indices.
//
// The pipeline runs in stages, each reading what the previous one stored:
//   - Fetch: download the daily close of every benchmark and stock, and the
//     daily rate of every currency into the reporting currency.
//   - Convert: rewrite every series denominated in another currency using the
//     rate of the same day.
//   - Value: multiply every stock price by the held amount.
//   - Aggregate: sum the holdings into the portfolio series.
//
// Series are stored as JSON objects mapping dates to decimal values, see
// Store. Exporting them to CSV and other reports is done by the export
// package, and the ptrack command wires everything together.
package tracker
