package steps

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"

	carrierQueries "github.com/andrescamacho/architect-tracker/internal/application/carrier/queries"
	"github.com/andrescamacho/architect-tracker/internal/domain/eventlog"
)

func (c *trackerContext) registerCarrierSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the commander transfers cargo:$`, c.theCommanderTransfersCargo)
	sc.Step(`^companion carrier data arrives:$`, c.companionCarrierDataArrives)
	sc.Step(`^the carrier should hold (\d+) "([^"]*)"$`, c.theCarrierShouldHold)
	sc.Step(`^the carrier should not list "([^"]*)"$`, c.theCarrierShouldNotList)
	sc.Step(`^the carrier should be named "([^"]*)"$`, c.theCarrierShouldBeNamed)
}

func (c *trackerContext) theCommanderTransfersCargo(table *godog.Table) error {
	transfers := make([]map[string]interface{}, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		count, err := getCellInt(table, row, "count")
		if err != nil {
			return err
		}
		transfers = append(transfers, map[string]interface{}{
			"Type":      getCellValue(table, row, "commodity"),
			"Count":     count,
			"Direction": getCellValue(table, row, "direction"),
		})
	}
	return c.feed(map[string]interface{}{"event": "CargoTransfer", "Transfers": transfers})
}

func (c *trackerContext) companionCarrierDataArrives(doc *godog.DocString) error {
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(doc.Content), &payload); err != nil {
		return fmt.Errorf("invalid carrier payload: %w", err)
	}
	c.lastOutcome = c.env.Router.FleetCarrierData(context.Background(), payload)
	if c.lastOutcome != eventlog.OutcomeApplied {
		return fmt.Errorf("carrier data was not applied: %s", c.lastOutcome)
	}
	return nil
}

func (c *trackerContext) carrier() (*carrierQueries.GetCarrierResponse, error) {
	resp, err := c.env.Mediator.Send(context.Background(), &carrierQueries.GetCarrierQuery{})
	if err != nil {
		return nil, err
	}
	return resp.(*carrierQueries.GetCarrierResponse), nil
}

func (c *trackerContext) theCarrierShouldHold(quantity int, commodity string) error {
	ledger, err := c.carrier()
	if err != nil {
		return err
	}
	for _, stock := range ledger.Commodities {
		if stock.Commodity == commodity {
			if stock.Quantity != quantity {
				return fmt.Errorf("expected %d %s on the carrier, got %d", quantity, commodity, stock.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("carrier holds no %s", commodity)
}

func (c *trackerContext) theCarrierShouldNotList(commodity string) error {
	ledger, err := c.carrier()
	if err != nil {
		return err
	}
	for _, stock := range ledger.Commodities {
		if stock.Commodity == commodity {
			return fmt.Errorf("carrier still lists %d %s", stock.Quantity, commodity)
		}
	}
	return nil
}

func (c *trackerContext) theCarrierShouldBeNamed(name string) error {
	ledger, err := c.carrier()
	if err != nil {
		return err
	}
	if ledger.CarrierName != name {
		return fmt.Errorf("expected carrier %q, got %q", name, ledger.CarrierName)
	}
	return nil
}
