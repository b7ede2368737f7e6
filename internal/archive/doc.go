// Package archive unpacks the original dataset archives into the directory
// layout the rest of the pipeline expects.
//
// The archives are produced on Korean Windows systems, so member names that
// are not flagged as UTF-8 are decoded from EUC-KR. Every name is then
// lowercased and passed through an ordered RenameTable that maps the
// source-data directory of each archive to "images" and the label directory
// to "labels". Members whose normalized path would leave the output
// directory are refused.
package archive
