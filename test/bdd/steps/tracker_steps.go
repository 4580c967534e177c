package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/architect-tracker/internal/adapters/journal"
	"github.com/andrescamacho/architect-tracker/internal/domain/eventlog"
	"github.com/andrescamacho/architect-tracker/test/helpers"
)

// trackerContext holds one wired tracker over a scratch directory
type trackerContext struct {
	dir         string
	env         *helpers.Environment
	feeder      *journal.Feeder
	lastOutcome eventlog.Outcome
	view        *supplyView
}

// InitializeTrackerScenario registers every tracker step on one shared context
func InitializeTrackerScenario(sc *godog.ScenarioContext) {
	c := &trackerContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, c.reset()
	})
	sc.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		if c.dir != "" {
			_ = os.RemoveAll(c.dir)
		}
		return ctx, nil
	})

	sc.Step(`^a fresh tracker workspace$`, c.aFreshTrackerWorkspace)
	sc.Step(`^commander "([^"]*)" is docked at "([^"]*)" in "([^"]*)"$`, c.commanderIsDockedAt)
	sc.Step(`^the journal records:$`, c.theJournalRecords)
	sc.Step(`^the tracker restarts$`, c.theTrackerRestarts)
	sc.Step(`^the last journal event should be routed as "([^"]*)"$`, c.theLastJournalEventShouldBeRoutedAs)
	sc.Step(`^the event log should contain:$`, c.theEventLogShouldContain)

	c.registerConstructionSteps(sc)
	c.registerCarrierSteps(sc)
	c.registerSupplySteps(sc)
}

func (c *trackerContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}

	dir, err := os.MkdirTemp("", "architect-tracker-bdd-")
	if err != nil {
		return err
	}
	c.dir = dir
	c.lastOutcome = ""
	c.view = nil
	return c.wire()
}

func (c *trackerContext) wire() error {
	env, err := helpers.NewEnvironment(c.dir, helpers.SharedTestDB, nil)
	if err != nil {
		return fmt.Errorf("failed to wire tracker: %w", err)
	}
	c.env = env
	c.feeder = journal.NewFeeder(env.Router, nil)
	return nil
}

func (c *trackerContext) aFreshTrackerWorkspace() error {
	// Workspace is created in reset()
	return nil
}

func (c *trackerContext) feed(entry map[string]interface{}) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.feedLine(line)
}

func (c *trackerContext) feedLine(line []byte) error {
	outcome, ok := c.feeder.FeedLine(context.Background(), line)
	if !ok {
		return fmt.Errorf("journal line is not a JSON object: %s", line)
	}
	c.lastOutcome = outcome
	return nil
}

func (c *trackerContext) commanderIsDockedAt(commander, station, system string) error {
	if err := c.feed(map[string]interface{}{"event": "LoadGame", "Commander": commander}); err != nil {
		return err
	}
	return c.feed(map[string]interface{}{"event": "Docked", "StationName": station, "StarSystem": system})
}

func (c *trackerContext) theJournalRecords(doc *godog.DocString) error {
	for _, line := range strings.Split(doc.Content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := c.feedLine([]byte(line)); err != nil {
			return err
		}
	}
	return nil
}

func (c *trackerContext) theTrackerRestarts() error {
	state := c.feeder.State()
	if err := c.wire(); err != nil {
		return err
	}
	c.feeder = journal.NewFeeder(c.env.Router, state)
	return nil
}

func (c *trackerContext) theLastJournalEventShouldBeRoutedAs(outcome string) error {
	if string(c.lastOutcome) != outcome {
		return fmt.Errorf("expected last outcome %s, got %s", outcome, c.lastOutcome)
	}
	return nil
}

func (c *trackerContext) theEventLogShouldContain(table *godog.Table) error {
	entries, err := c.env.EventRepo.List(context.Background(), eventlog.Filter{Limit: 100})
	if err != nil {
		return err
	}

	expected := table.Rows[1:]
	if len(entries) != len(expected) {
		return fmt.Errorf("expected %d logged events, got %d", len(expected), len(entries))
	}
	for i, row := range expected {
		kind := getCellValue(table, row, "kind")
		outcome := getCellValue(table, row, "outcome")
		if entries[i].Kind != kind || string(entries[i].Outcome) != outcome {
			return fmt.Errorf("event %d: expected %s/%s, got %s/%s", i, kind, outcome, entries[i].Kind, entries[i].Outcome)
		}
	}
	return nil
}

// getCellValue finds a row's value by its header column
func getCellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}
	for i, headerCell := range table.Rows[0].Cells {
		if headerCell.Value == columnName {
			if i < len(row.Cells) {
				return row.Cells[i].Value
			}
			return ""
		}
	}
	return ""
}

func getCellInt(table *godog.Table, row *messages.PickleTableRow, columnName string) (int, error) {
	raw := getCellValue(table, row, columnName)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("column %s: %q is not a number", columnName, raw)
	}
	return n, nil
}
