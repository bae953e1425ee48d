// Package congress fetches historical legislative bills from the
// Congress.gov v3 API: per-congress bill listings and the text
// representations behind each bill, with plain text preferred and
// scanned PDFs routed through OCR.
package congress
