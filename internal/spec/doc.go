// Package spec loads MIoT specification instance documents.
//
// A specification instance describes one device model: its services,
// properties, events and actions. Documents are fetched from a miot-spec
// registry endpoint (GET <base>/instance?type=<urn>) or read from a local
// file, and decoded into generic JSON values so that schema drift between
// registry revisions never breaks loading. Interpretation of the document
// is the flatten package's job; this package only retrieves and decodes.
//
// URNs are normalized before use: a trailing ":<digits>" version suffix is
// stripped, so "urn:miot-spec-v2:device:fan:0000A005:dmaker-p5:1" and the
// unversioned form identify the same model.
package spec
