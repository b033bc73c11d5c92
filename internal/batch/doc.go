// Package batch turns a directory of PDFs into a directory of JSON outlines.
//
// Each input file name.pdf (any case of the extension) produces
// name.json in the output directory. Files are processed in parallel with
// errgroup; a failing document is reported in its FileResult without
// stopping the others unless fail-fast is enabled.
package batch
