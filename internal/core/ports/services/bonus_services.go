package services

import "context"

// SweepResult summarises one execution of the bonus sweep.
type SweepResult struct {
	Scanned int // accounts with an armed timer at sweep start
	Bonused int // accounts credited and disarmed this cycle
	Failed  int // accounts skipped because their update failed
}

// BonusSvcFacade runs the scheduled purchase-bonus sweep.
type BonusSvcFacade interface {
	// RunSweep scans every armed account and applies the purchase bonus to
	// those whose timer has matured. A failure on one account does not stop
	// the sweep; it is counted in the result and logged.
	RunSweep(ctx context.Context) (SweepResult, error)
}
