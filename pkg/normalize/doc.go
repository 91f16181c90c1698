// Package normalize converts shorthand authoring forms into the canonical
// structures the output document schema expects.
//
// Every function in this package is pure, stateless and total: any valid
// input, including an absent one, produces a valid canonical value, and
// re-normalizing a canonical value is a no-op. There is no error path.
//
// Covered shorthands:
//   - color names and short aliases ([Color])
//   - threshold maps and pair lists ([Thresholds])
//   - legend placement strings ([Legend])
//   - tooltip, reduce-options, line-style and scale-distribution
//     scalars ([Tooltip], [Reduce], [LineStyle], [ScaleDistribution])
//   - tagged value-mapping entries ([ValueMappings])
//
// [DeepMerge] implements the raw-override merge used as the last-mile
// escape hatch over compiled panel records.
package normalize
