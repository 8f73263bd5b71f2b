package mint

import (
	"github.com/ethereum/go-ethereum/log"
)

// FinalizeBlock runs once per block. It accrues the current BNC price into
// the emission pool and starts a weighted distribution round when one is due.
// A failed round is logged and never aborts block finalization.
func (e *Engine) FinalizeBlock(block uint64) {
	pp := readPricePoint(e.db)
	if pp.Price.IsZero() {
		return
	}
	price := e.oscillate(block, pp)
	writePool(e.db, satAdd(readPool(e.db), price))

	m := readMonitor(e.db)
	if e.issueDue(block, m) {
		_, err := e.IssueWeighted(block)
		if err == nil {
			return
		}
		issueFailureMeter.Mark(1)
		log.Error("An error happened while issuing BNC", "block", block, "err", err)
	}

	if m.MaxMint.Gt(m.Watermark) {
		writeUint64(e.db, monitorBlockSlot, block)
		writeWord(e.db, watermarkSlot, m.MaxMint)
	}
}

// issueDue evaluates
//
//	(sinceLast == MaxIssueBlockInterval && pool != 0 && maxMint != 0) || txCount >= MaxTxAmount
//
// The transaction count alone is enough to force a round.
func (e *Engine) issueDue(block uint64, m Monitor) bool {
	intervalDue := satSub64(block, m.Block) == uint64(e.config.MaxIssueBlockInterval) &&
		!readPool(e.db).IsZero() && !m.MaxMint.IsZero()
	return intervalDue || m.TxCount >= e.config.MaxTxAmount
}
