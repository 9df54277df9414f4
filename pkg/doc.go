// Package pkg provides the core libraries for Firegrid electrical
// calculation and compliance validation.
//
// # Overview
//
// Firegrid checks fire alarm system designs against NFPA 72 before anything
// is installed: voltage drop on every circuit, standby battery capacity,
// detector coverage, and device placement rules. The pkg directory is
// organized into four main areas:
//
//  1. Domain logic - electrical calculations and rule evaluation
//  2. Catalog - device, wire, and rule specifications
//  3. Pipeline - orchestration (load → calculate → report)
//  4. Infrastructure - caching, observability, rendering, HTTP API
//
// # Architecture
//
// The typical data flow through Firegrid:
//
//	Project file (YAML)
//	         ↓
//	    [project] package (parse + validate placements)
//	         ↓
//	    [circuit] package (voltage drop, compliance, gauge optimization)
//	    [battery] package (standby capacity sizing)
//	    [coverage] package (detector coverage analysis)
//	         ↓
//	    [rules] package (NFPA 72 rule evaluation)
//	         ↓
//	    [report] package (aggregated compliance report)
//
// # Main Packages
//
// [catalog] - Device, wire, and NFPA rule specifications. Ships a builtin
// catalog; site overlays load from TOML files or a MongoDB store.
//
// [circuit] - Circuit modeling, the voltage-drop calculator, the compliance
// validator, and the wire-gauge optimizer.
//
// [battery] - Standby battery sizing per NFPA 72: amp-hour accumulation,
// temperature derating, Peukert correction, and standard size matching.
//
// [coverage] - Detector coverage estimation per room with gap detection.
//
// [rules] - The NFPA 72 rule engine producing severity-ranked findings.
//
// [report] - Compliance report aggregation with an overall percentage.
//
// [pipeline] - Complete validation pipeline (load → calculate → report)
// used by the CLI and the HTTP API. Reports are cached by system content
// hash.
//
// [cache] - Cache interface with file, Redis, and null backends.
//
// [api] - The chi HTTP API exposing validation, reporting, and battery
// sizing.
//
// [render] - Circuit diagram generation via Graphviz.
//
// [observability] - Pluggable hooks around pipeline stages, cache access,
// and API requests.
//
// [catalog]: https://pkg.go.dev/github.com/firegrid/firegrid/pkg/catalog
// [circuit]: https://pkg.go.dev/github.com/firegrid/firegrid/pkg/circuit
// [battery]: https://pkg.go.dev/github.com/firegrid/firegrid/pkg/battery
// [coverage]: https://pkg.go.dev/github.com/firegrid/firegrid/pkg/coverage
// [rules]: https://pkg.go.dev/github.com/firegrid/firegrid/pkg/rules
// [report]: https://pkg.go.dev/github.com/firegrid/firegrid/pkg/report
// [pipeline]: https://pkg.go.dev/github.com/firegrid/firegrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/firegrid/firegrid/pkg/cache
// [api]: https://pkg.go.dev/github.com/firegrid/firegrid/pkg/api
// [render]: https://pkg.go.dev/github.com/firegrid/firegrid/pkg/render
// [observability]: https://pkg.go.dev/github.com/firegrid/firegrid/pkg/observability
package pkg
