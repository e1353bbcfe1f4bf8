package report

import (
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

// Digest fingerprints a catalog, a journal and a period. Any change to an
// account, a transaction or the bounds yields a different value.
func Digest(accts []model.Account, txns []model.Transaction, p ledger.Period) uint64 {
	h := xxhash.New()
	field := func(s string) {
		_, _ = h.WriteString(s)
		_, _ = h.Write([]byte{0})
	}

	field(p.Start.Format(time.RFC3339Nano))
	field(p.End.Format(time.RFC3339Nano))

	field(strconv.Itoa(len(accts)))
	for _, a := range accts {
		field(a.ID)
		field(a.Name)
		field(string(a.Type))
		field(a.Category)
		field(string(a.NormalBalance))
		field(a.Description)
	}

	field(strconv.Itoa(len(txns)))
	for _, t := range txns {
		field(t.ID)
		field(t.Date.Format(time.RFC3339Nano))
		field(t.Amount.String())
		field(t.DebitAccountID)
		field(t.CreditAccountID)
	}
	return h.Sum64()
}
