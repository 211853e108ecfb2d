// Package costbasis reconstructs the historical number of shares held in a
// single investment, walking backward in time from the current holding.
//
// The core functionalities include:
//   - Price Resolution: finding the trading session whose closing price values
//     a corporate action dated on a weekend or a holiday.
//   - Event Timeline: merging dividend payments and stock splits into one
//     date-keyed record per event date.
//   - Reconstruction: undoing, most recent first, the reinvestment of every
//     dividend and the ratio of every split to recover the share count (and
//     position value) on every trading date.
//
// Reading the input files and presenting the result are handled by the
// ingest and renderer packages, and by the `cbs` command-line tool.
package costbasis
