package steps

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"

	constructionQueries "github.com/andrescamacho/architect-tracker/internal/application/construction/queries"
)

type supplyView = constructionQueries.FacilityView

func (c *trackerContext) registerSupplySteps(sc *godog.ScenarioContext) {
	sc.Step(`^the station market lists:$`, c.theStationMarketLists)
	sc.Step(`^the ship hold contains:$`, c.theShipHoldContains)
	sc.Step(`^I view supply for "([^"]*)" with a (\d+) unit hold$`, c.iViewSupplyFor)
	sc.Step(`^I view supply for "([^"]*)" with a (\d+) unit hold hiding provided materials$`, c.iViewSupplyHidingProvided)
	sc.Step(`^the supply row for "([^"]*)" should show:$`, c.theSupplyRowShouldShow)
	sc.Step(`^the view should list (\d+) materials?$`, c.theViewShouldList)
	sc.Step(`^the view should need (\d+) trips?$`, c.theViewShouldNeedTrips)
}

func (c *trackerContext) theStationMarketLists(table *godog.Table) error {
	items := make([]map[string]interface{}, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		stock, err := getCellInt(table, row, "stock")
		if err != nil {
			return err
		}
		items = append(items, map[string]interface{}{
			"Name":           getCellValue(table, row, "name"),
			"Name_Localised": getCellValue(table, row, "localised"),
			"Stock":          stock,
		})
	}
	doc, err := json.Marshal(map[string]interface{}{"event": "Market", "StationName": "Vega Market", "Items": items})
	if err != nil {
		return err
	}
	return c.env.WriteMarket(string(doc))
}

func (c *trackerContext) theShipHoldContains(table *godog.Table) error {
	inventory := make([]map[string]interface{}, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		count, err := getCellInt(table, row, "count")
		if err != nil {
			return err
		}
		inventory = append(inventory, map[string]interface{}{"Name": getCellValue(table, row, "name"), "Count": count})
	}
	doc, err := json.Marshal(map[string]interface{}{"event": "Cargo", "Vessel": "Ship", "Inventory": inventory})
	if err != nil {
		return err
	}
	return c.env.WriteCargo(string(doc))
}

func (c *trackerContext) iViewSupplyFor(site string, capacity int) error {
	return c.viewSupply(site, capacity, false)
}

func (c *trackerContext) iViewSupplyHidingProvided(site string, capacity int) error {
	return c.viewSupply(site, capacity, true)
}

func (c *trackerContext) viewSupply(site string, capacity int, hideProvided bool) error {
	resp, err := c.env.Mediator.Send(context.Background(), &constructionQueries.GetFacilityViewQuery{
		FacilityID:    site,
		HideProvided:  hideProvided,
		CargoCapacity: capacity,
	})
	if err != nil {
		return err
	}
	views := resp.(*constructionQueries.GetFacilityViewResponse).Views
	if len(views) != 1 {
		return fmt.Errorf("expected one view, got %d", len(views))
	}
	c.view = &views[0]
	return nil
}

func (c *trackerContext) theSupplyRowShouldShow(material string, table *godog.Table) error {
	if c.view == nil {
		return fmt.Errorf("no supply view was requested")
	}
	expected := table.Rows[1]
	for _, row := range c.view.Rows {
		if row.DisplayName != material {
			continue
		}
		actual := map[string]int{
			"needed":    row.Needed,
			"market":    row.MarketStock,
			"carrier":   row.CarrierQuantity,
			"ship":      row.ShipQuantity,
			"shortfall": row.Shortfall,
		}
		for column, got := range actual {
			want, err := getCellInt(table, expected, column)
			if err != nil {
				return err
			}
			if got != want {
				return fmt.Errorf("%s %s: expected %d, got %d", material, column, want, got)
			}
		}
		return nil
	}
	return fmt.Errorf("view has no row for %s", material)
}

func (c *trackerContext) theViewShouldList(count int) error {
	if c.view == nil {
		return fmt.Errorf("no supply view was requested")
	}
	if len(c.view.Rows) != count {
		return fmt.Errorf("expected %d rows, got %d", count, len(c.view.Rows))
	}
	return nil
}

func (c *trackerContext) theViewShouldNeedTrips(trips int) error {
	if c.view == nil {
		return fmt.Errorf("no supply view was requested")
	}
	if c.view.Summary.RequiredTrips != trips {
		return fmt.Errorf("expected %d trips, got %d", trips, c.view.Summary.RequiredTrips)
	}
	return nil
}
