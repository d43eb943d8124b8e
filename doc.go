package sempcfg

// Package sempcfg provides:
//
// - A configuration tree (Object) built from a nested JSON/YAML document, guided by a spec.Registry
// - Normalisation passes (attribute stripping, default elision, subtree pruning)
// - Stable object identifiers and canonical, byte-stable JSON payloads
// - Create/delete lowering into an ordered command.List, including the disable/enable protocol
//
// Design policy:
// - Keep only public APIs in the root package; schema import lives under spec/, commands under command/.
// - The core is pure: no I/O, no logging, no globals. The registry is injected at NewRoot.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  reg, _, err := spec.ImportFile("semp-v2-config.json", spec.DefaultOptions())
//  root, err := sempcfg.NewRoot(reg, "")
//  err = root.FromMap(doc)
//  err = root.RemoveChildren(sempcfg.Reserved, sempcfg.Deprecated)
//  err = root.RemoveAttributesWithDefaultValue()
//  list, err := sempcfg.Plan(root, sempcfg.ModeCreate)
//
// Commands must be replayed in list order; later commands depend on objects
// created or enabled by earlier ones.
