// Package chronicling adapts the bulk pre-OCR'd newspaper dataset
// into canonical documents. The corpus already carries extracted
// text, so no OCR happens here; rows are partitioned into fixed-size
// batches that map one-to-one onto downstream indexed collections.
package chronicling
