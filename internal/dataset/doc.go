// Package dataset partitions page-image pools into training, validation and
// evaluation splits and materializes per-word patches with a label ledger.
//
// # Directory Layout
//
// Given a dataset directory D (holding the original archives), the pipeline
// works under its parent P:
//
//	P/unzipped/{training,validation}/images/**.jpg   page images (pools)
//	P/unzipped/{training,validation}/labels/**.json  annotations, same stems
//	P/training_and_validation_set/<split>/<select>/images/  word patches
//	P/training_and_validation_set/<split>/<select>/labels.csv
//	P/evaluation_set/{images,labels}/...             copied evaluation pages
//
// # Reproducibility
//
// Pools are enumerated in sorted path order and sampled with a single
// explicitly seeded PRNG. The training draw always precedes the validation
// draw, which precedes the evaluation draw, so the same seed, pools and
// counts always produce the same splits.
//
// # Resumability
//
// Patch filenames are derived from the source stem and the box coordinates.
// A patch whose file already exists is skipped together with its ledger row,
// so an interrupted run can simply be started again.
//
// # Error Handling
//
//   - SamplingError: a requested count exceeds the pool; fatal for the run
//   - AnnotationParseError: one annotation file is malformed; the file is skipped
//   - PatchWriteError: one patch cannot be cropped or written; the record is skipped
package dataset
