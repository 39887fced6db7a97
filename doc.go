// Package fundflow provides the core types and calculation engine for
// tracking how a venture fund's exit proceeds are split between limited
// partners and the general partner. It is designed to be local-first,
// auditable, and deterministic, so fund records can live in version control
// and every distribution can be replayed from first principles.
//
// The core functionalities include:
//   - Fund Records: Recording capital calls and exit events in an ordered,
//     human-readable JSONL file, one event per line.
//   - Distribution Waterfall: A stateless engine that folds exit events into
//     a distribution ledger, applying capital return, hurdle, carried
//     interest, recycling, and an optional GP clawback true-up.
//   - Fund Metrics: DPI and TVPI ratios on every ledger row, plus net IRR
//     and management-fee impact over the fund's life.
//   - Data Persistence: Encoding and decoding fund records and distribution
//     ledgers to and from canonical JSON, byte-stable across runs.
//
// This package serves as the foundational logic for the `vfl` command-line
// tool, ensuring that all reports are consistent and based on a single
// source of truth.
package fundflow
