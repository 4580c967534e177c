package journal

// Journal event kinds the router reacts to
const (
	EventConstructionDepot = "ColonisationConstructionDepot"
	EventDocked            = "Docked"
	EventCargoTransfer     = "CargoTransfer"
	EventCargoDepot        = "CargoDepot"

	// KindFleetCarrierData labels carrier data pushed outside the journal
	KindFleetCarrierData = "FleetCarrierData"
)

// refreshEvents change market or cargo state the view is derived from
var refreshEvents = map[string]struct{}{
	"Market":             {},
	"Cargo":              {},
	"CollectCargo":       {},
	"EjectCargo":         {},
	"MarketBuy":          {},
	"MarketSell":         {},
	"MiningRefined":      {},
	"MissionCompleted":   {},
	"BuyDrones":          {},
	"SellDrones":         {},
	"FetchRemoteModule":  {},
	"MissionAccepted":    {},
	"RedeemVoucher":      {},
	"CarrierBuy":         {},
	"CarrierSell":        {},
	"EngineerCraft":      {},
	"ModuleBuy":          {},
	"ModuleSell":         {},
	"ModuleRetrieve":     {},
	"ModuleStore":        {},
	"ApproachSettlement": {},
	"Location":           {},
	"MarketData":         {},
	"FSSDiscoveryScan":   {},
	EventCargoDepot:      {},
}

// IsRefreshEvent reports whether kind only triggers a display refresh
func IsRefreshEvent(kind string) bool {
	_, ok := refreshEvents[kind]
	return ok
}
