// Package catalog provides the immutable equipment and code-rule catalogs
// consumed by the calculation engine.
//
// A [Catalog] maps device model identifiers to [DeviceSpecification], AWG
// gauges to [WireSpecification], and rule identifiers to [NFPARule]. Catalogs
// are loaded once at engine construction and are safe to share across
// concurrent callers: all lookup methods are read-only.
//
// # Sources
//
// Three catalog sources are supported:
//
//   - [Builtin] returns a compiled-in catalog of common devices, standard
//     copper wire resistances, and the NFPA 72 derived rule set.
//   - [LoadFile] reads a TOML catalog file, allowing sites to describe their
//     own equipment.
//   - [MongoStore] loads the three catalogs from MongoDB collections for
//     deployments that share a catalog across workstations.
//
// # Lookup Semantics
//
// A lookup miss is always an explicit CATALOG_NOT_FOUND error. The engine
// never substitutes a hard-coded default specification: guessing a device's
// electrical characteristics on a life-safety path is worse than failing.
package catalog
