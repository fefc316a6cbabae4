// Package writers turns design and thermodynamic results into serialized
// outputs.
//
// Design:
//   - Writers own all presentation knowledge (pretty text, TSV, JSON/JSONL/YAML).
//   - The designer stays domain-only; apps only pick a format.
//   - JSON, JSONL and YAML go through pkg/api (v1) for a stable wire format.
package writers
