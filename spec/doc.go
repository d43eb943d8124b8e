// Package spec is the schema registry behind sempcfg.
//
// For every spec path (the collection names from the root joined by "/",
// e.g. "/msgVpns/queues") a Registry knows the identifying attributes in
// path order, the attribute classifications, default values, child
// collections and whether the type is deprecated. It also answers two global
// questions: which paths hold pre-existing "default" singleton objects, and
// which child paths require their parent to be disabled before changes.
//
// A Spec is built either programmatically with Builder or by compiling a SEMP
// v2 config API document with Import / ImportYAML / ImportFile.
package spec
