// Package source loads documents as per-page text fragments.
//
// Two kinds of input are supported: PDF files, whose glyphs are merged into
// fragments with rsc.io/pdf, and fragment files in YAML or JSON produced by
// any other extractor:
//
//	pages:
//	  - index: 0
//	    width: 612
//	    height: 792
//	    fragments:
//	      - text: Certificate of Insurance
//	        bbox: [72, 50, 300, 64]   # left, top, right, bottom
//	        font: Helvetica-Bold
//	        size: 14
//	        flags: [bold]
//	        order: 0
//	        variable: false
//
// LoadFile picks the loader from the file's leading bytes, falling back to
// the extension. Coordinates always use a top-left origin.
package source
