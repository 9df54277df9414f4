package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/firegrid/firegrid/pkg/catalog"
)

// catalogCommand creates the catalog management command.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and manage the device catalog",
	}

	cmd.AddCommand(c.catalogShowCommand())
	cmd.AddCommand(c.catalogSeedCommand())
	cmd.AddCommand(c.catalogPullCommand())

	return cmd
}

// catalogShowCommand creates the "catalog show" subcommand.
func (c *CLI) catalogShowCommand() *cobra.Command {
	var (
		catalogPath string
		category    string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective device catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Builtin()
			if catalogPath != "" {
				overlay, err := catalog.LoadFile(catalogPath)
				if err != nil {
					return err
				}
				cat = cat.Merge(overlay)
			}
			if category != "" {
				nfpaRules := cat.RulesByCategory(category)
				if len(nfpaRules) == 0 {
					return fmt.Errorf("no rules in category %q", category)
				}
				printRules(nfpaRules)
				return nil
			}
			printCatalog(cat)
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "site catalog (TOML) merged over the builtin one")
	cmd.Flags().StringVar(&category, "category", "", "print only rules in this category (spacing, pull_station, circuit, notification, system)")
	return cmd
}

// catalogSeedCommand creates the "catalog seed" subcommand.
func (c *CLI) catalogSeedCommand() *cobra.Command {
	var (
		uri         string
		dbName      string
		catalogPath string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed a MongoDB catalog store with the effective catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Builtin()
			if catalogPath != "" {
				overlay, err := catalog.LoadFile(catalogPath)
				if err != nil {
					return err
				}
				cat = cat.Merge(overlay)
			}
			return c.runCatalogSeed(cmd.Context(), uri, dbName, cat)
		},
	}

	cmd.Flags().StringVar(&uri, "uri", "mongodb://localhost:27017", "MongoDB connection URI")
	cmd.Flags().StringVar(&dbName, "db", "firegrid", "database name")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "site catalog (TOML) merged over the builtin one")
	return cmd
}

// catalogPullCommand creates the "catalog pull" subcommand.
func (c *CLI) catalogPullCommand() *cobra.Command {
	var (
		uri    string
		dbName string
	)

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Print the catalog stored in MongoDB",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCatalogPull(cmd.Context(), uri, dbName)
		},
	}

	cmd.Flags().StringVar(&uri, "uri", "mongodb://localhost:27017", "MongoDB connection URI")
	cmd.Flags().StringVar(&dbName, "db", "firegrid", "database name")
	return cmd
}

// runCatalogSeed connects to MongoDB and writes the catalog.
func (c *CLI) runCatalogSeed(ctx context.Context, uri, dbName string, cat *catalog.Catalog) error {
	spinner := newSpinnerWithContext(ctx, "Connecting to MongoDB...")
	spinner.Start()

	store, client, err := catalog.Connect(ctx, uri, dbName)
	if err != nil {
		spinner.StopWithError("Connection failed")
		return err
	}
	defer func() { _ = client.Disconnect(ctx) }()

	if err := store.Seed(ctx, cat); err != nil {
		spinner.StopWithError("Seeding failed")
		return err
	}
	spinner.Stop()

	printSuccess("Seeded %d devices, %d wires, %d rules",
		len(cat.Devices()), len(cat.Wires()), len(cat.Rules()))
	printDetail("Database: %s", dbName)
	return nil
}

// runCatalogPull connects to MongoDB, loads the catalog, and prints it.
func (c *CLI) runCatalogPull(ctx context.Context, uri, dbName string) error {
	spinner := newSpinnerWithContext(ctx, "Loading catalog from MongoDB...")
	spinner.Start()

	store, client, err := catalog.Connect(ctx, uri, dbName)
	if err != nil {
		spinner.StopWithError("Connection failed")
		return err
	}
	defer func() { _ = client.Disconnect(ctx) }()

	cat, err := store.Load(ctx)
	if err != nil {
		spinner.StopWithError("Load failed")
		return err
	}
	spinner.Stop()

	printCatalog(cat)
	return nil
}

// printCatalog prints the catalog's devices, wires, and rules.
func printCatalog(cat *catalog.Catalog) {
	devices := cat.Devices()
	sort.Slice(devices, func(i, j int) bool { return devices[i].Model < devices[j].Model })

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Devices (%d)", len(devices))))
	for _, d := range devices {
		fmt.Printf("  %s %s\n", StyleValue.Render(d.Model),
			StyleDim.Render(fmt.Sprintf("%s · %.0fmA alarm · %.0f-%.0fV",
				d.Type, d.AlarmCurrent*1000, d.VoltageMin, d.VoltageMax)))
	}

	wires := cat.Wires()
	printNewline()
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Wires (%d)", len(wires))))
	for _, w := range wires {
		fmt.Printf("  %s %s\n", StyleValue.Render(fmt.Sprintf("%d AWG", w.GaugeAWG)),
			StyleDim.Render(fmt.Sprintf("%.5f Ω/ft · %.1fA max", w.ResistancePft, w.MaxCurrent)))
	}

	printNewline()
	printRules(cat.Rules())
}

// printRules prints a rule listing with section and category.
func printRules(nfpaRules []catalog.NFPARule) {
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Rules (%d)", len(nfpaRules))))
	for _, r := range nfpaRules {
		fmt.Printf("  %s %s\n", StyleValue.Render(r.ID),
			StyleDim.Render(fmt.Sprintf("§ %s · %s · %s", r.Section, r.Category, r.Title)))
	}
}
