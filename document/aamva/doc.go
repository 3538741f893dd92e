// Package aamva parses the text payload of the PDF417 barcode on North
// American driver's licences (AAMVA DL/ID card design specification).
//
// A payload is read line by line: the first three characters of a line are
// the data element identifier and the rest is its value. Parse maps the
// elements it knows to a flat Record, normalizing dates to YYYY-MM-DD,
// heights to inches and the sex code to a Gender. Parsing is total: bad
// values are reported in-band through the INVALID_DATE and INVALID_HEIGHT
// sentinels, and Record.InvalidFields lists the fields that carry one.
//
// The AAMVA header and subfile designator are not stripped. A header line
// starting with a known identifier is read like any other element.
package aamva
