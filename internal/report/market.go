package report

import (
	"errors"
	"fmt"
	"time"

	"leeter/internal/journal"
)

var ErrMissingMarketMetadata = errors.New("missing market metadata")

// MissingMarketMetadataError reports a transaction whose market was never
// docked at anywhere in the stream.
type MissingMarketMetadataError struct {
	MarketID int64
	Source   string
	Line     int
}

func (e *MissingMarketMetadataError) Error() string {
	return fmt.Sprintf("%s: no Docked event for market %d (%s line %d)", ErrMissingMarketMetadata, e.MarketID, e.Source, e.Line)
}

func (e *MissingMarketMetadataError) Is(target error) bool { return target == ErrMissingMarketMetadata }

// MarketWhitelist is the transaction vocabulary of the ledger.
var MarketWhitelist = []string{journal.KindMarketBuy, journal.KindMarketSell}

type LedgerEntry struct {
	Timestamp   time.Time
	Buy         bool
	MarketID    int64
	Commodity   string
	Count       int64
	Amount      int64
	StationName string
	StarSystem  string
	Source      string
	Line        int
}

// MarketLedger lists every buy and sell with the station and system of the
// most recent Docked event for the same market.
func MarketLedger(records []journal.Record) ([]LedgerEntry, error) {
	docks := DockIndex(records)

	ledger := make([]LedgerEntry, 0)
	for _, rec := range records {
		tx, ok := rec.Payload.(journal.MarketTransaction)
		if !ok {
			continue
		}
		dock, ok := docks[tx.MarketID]
		if !ok {
			return nil, &MissingMarketMetadataError{MarketID: tx.MarketID, Source: rec.Source, Line: rec.Line}
		}
		ledger = append(ledger, LedgerEntry{
			Timestamp:   rec.Timestamp,
			Buy:         tx.Buy,
			MarketID:    tx.MarketID,
			Commodity:   tx.Commodity(),
			Count:       tx.Count,
			Amount:      tx.Amount,
			StationName: dock.StationName,
			StarSystem:  dock.StarSystem,
			Source:      rec.Source,
			Line:        rec.Line,
		})
	}
	return ledger, nil
}

// DockIndex maps each market id to its latest Docked payload in the stream.
func DockIndex(records []journal.Record) map[int64]journal.Docked {
	docks := make(map[int64]journal.Docked)
	for _, rec := range records {
		if dock, ok := rec.Payload.(journal.Docked); ok {
			docks[dock.MarketID] = dock
		}
	}
	return docks
}
