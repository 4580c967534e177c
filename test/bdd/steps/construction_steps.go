package steps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/architect-tracker/internal/domain/construction"
)

func (c *trackerContext) registerConstructionSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the depot reports:$`, c.theDepotReports)
	sc.Step(`^the site "([^"]*)" should be tracked in "([^"]*)"$`, c.theSiteShouldBeTrackedIn)
	sc.Step(`^the site "([^"]*)" should not be tracked$`, c.theSiteShouldNotBeTracked)
	sc.Step(`^the site "([^"]*)" should need (\d+) "([^"]*)"$`, c.theSiteShouldNeed)
	sc.Step(`^the facility file should hold (\d+) sites?$`, c.theFacilityFileShouldHold)
	sc.Step(`^the overlay should have selected "([^"]*)"$`, c.theOverlayShouldHaveSelected)
}

func (c *trackerContext) theDepotReports(table *godog.Table) error {
	resources := make([]map[string]interface{}, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		required, err := getCellInt(table, row, "required")
		if err != nil {
			return err
		}
		provided, err := getCellInt(table, row, "provided")
		if err != nil {
			return err
		}
		resources = append(resources, map[string]interface{}{
			"Name":           getCellValue(table, row, "name"),
			"Name_Localised": getCellValue(table, row, "localised"),
			"RequiredAmount": required,
			"ProvidedAmount": provided,
		})
	}

	return c.feed(map[string]interface{}{
		"event":             "ColonisationConstructionDepot",
		"MarketID":          3960000000,
		"ResourcesRequired": resources,
	})
}

func (c *trackerContext) site(name string) (*construction.Facility, bool) {
	return c.env.Store.Get(context.Background(), construction.CanonicalFacilityID(name))
}

func (c *trackerContext) theSiteShouldBeTrackedIn(name, system string) error {
	f, ok := c.site(name)
	if !ok {
		return fmt.Errorf("site %q is not tracked", name)
	}
	if f.System() != system {
		return fmt.Errorf("expected site in %q, got %q", system, f.System())
	}
	return nil
}

func (c *trackerContext) theSiteShouldNotBeTracked(name string) error {
	if _, ok := c.site(name); ok {
		return fmt.Errorf("site %q is still tracked", name)
	}
	return nil
}

func (c *trackerContext) theSiteShouldNeed(name string, amount int, material string) error {
	f, ok := c.site(name)
	if !ok {
		return fmt.Errorf("site %q is not tracked", name)
	}
	for _, m := range f.Materials().All() {
		if m.DisplayName() == material {
			if m.Needed() != amount {
				return fmt.Errorf("expected %d %s needed, got %d", amount, material, m.Needed())
			}
			return nil
		}
	}
	return fmt.Errorf("site %q has no material %q", name, material)
}

func (c *trackerContext) theFacilityFileShouldHold(count int) error {
	data, err := os.ReadFile(c.env.FacilityPath())
	if errors.Is(err, fs.ErrNotExist) {
		data = []byte("{}")
	} else if err != nil {
		return err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("facility file is not a JSON object: %w", err)
	}
	if len(doc) != count {
		return fmt.Errorf("expected %d sites on disk, got %d", count, len(doc))
	}
	return nil
}

func (c *trackerContext) theOverlayShouldHaveSelected(name string) error {
	want := construction.CanonicalFacilityID(name)
	for _, id := range c.env.Notifier.Selected() {
		if id == want {
			return nil
		}
	}
	return fmt.Errorf("site %q was never selected, got %v", name, c.env.Notifier.Selected())
}
