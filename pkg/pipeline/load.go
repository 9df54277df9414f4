package pipeline

import (
	"github.com/firegrid/firegrid/pkg/catalog"
	"github.com/firegrid/firegrid/pkg/project"
)

// Load resolves the project and the catalog from the options. A site
// catalog file is merged over the builtin catalog, so projects only need
// to declare the models the builtin set lacks (or override).
func Load(opts Options) (*project.System, *catalog.Catalog, error) {
	sys := opts.System
	if sys == nil {
		loaded, err := project.Load(opts.ProjectPath)
		if err != nil {
			return nil, nil, err
		}
		sys = loaded
	}

	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Builtin()
		if opts.CatalogPath != "" {
			site, err := catalog.LoadFile(opts.CatalogPath)
			if err != nil {
				return nil, nil, err
			}
			cat = cat.Merge(site)
		}
	}

	return sys, cat, nil
}

// countDevices returns the total number of device placements in a system.
func countDevices(sys *project.System) int {
	n := 0
	for _, p := range sys.Panels {
		for _, c := range p.Circuits {
			n += len(c.Devices)
		}
	}
	return n
}
