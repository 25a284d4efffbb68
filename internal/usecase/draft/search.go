package draft

import (
	"context"
	"log"
	"time"

	"microfin-backoffice/internal/domain/portfolio"
	"microfin-backoffice/pkg/nic"
)

// minimum input length before a search is worth firing
const minSearchLength = 9

const searchTimeout = 5 * time.Second

// SetNIC records the NIC input and schedules the auto-fill search once
// the input has been quiet for the debounce window. Every call cancels
// the previously pending search; a response is applied only if its
// input is still the draft's current value, so a stale lookup can
// never clobber a newer one.
func (c *Controller) SetNIC(draftID, value string) error {
	e, err := c.entry(draftID)
	if err != nil {
		return err
	}

	term := nic.Normalize(value)

	e.mu.Lock()
	defer e.mu.Unlock()
	d := e.d
	d.NIC = term
	clearField(d, "nic")
	touch(d)

	e.searchSeq++
	if e.searchTimer != nil {
		e.searchTimer.Stop()
		e.searchTimer = nil
	}
	if len(term) < minSearchLength {
		return nil
	}
	seq := e.searchSeq
	e.searchTimer = time.AfterFunc(c.debounce, func() {
		c.runNICSearch(draftID, term, seq)
	})
	return nil
}

// runNICSearch resolves the code and, on exactly one match, drives the
// whole cascade forward in a single update. Zero or ambiguous matches,
// lookup failures, and stale responses all leave the draft as it was.
func (c *Controller) runNICSearch(draftID, term string, seq uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	e, err := c.entry(draftID)
	if err != nil {
		return // draft discarded while the search was pending
	}

	matches, err := c.portfolio.FindCustomersByCode(ctx, term)
	if err != nil {
		log.Printf("nic search %q: %v", term, err)
		return
	}
	match := exactMatch(matches, term)
	if match == nil {
		return
	}

	// gather everything the atomic update needs before taking the lock
	roster, err := c.portfolio.ListCustomersByGroup(ctx, match.GroupID)
	if err != nil {
		log.Printf("nic search %q: roster lookup: %v", term, err)
		return
	}
	detail, err := c.portfolio.GetCustomer(ctx, match.ID)
	if err != nil {
		log.Printf("nic search %q: detail lookup: %v", term, err)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if seq != e.searchSeq || e.d.NIC != term {
		return // a newer input superseded this search
	}
	d := e.d
	d.CenterID = match.CenterID
	d.GroupID = match.GroupID
	d.CustomerID = match.ID
	d.NIC = match.CustomerCode
	d.ActiveProductIDs = activeProductIDs(detail.Loans)
	assignGuarantors(d, roster, match.ID)
	applyGenderWarning(d, match)
	clearField(d, "center")
	clearField(d, "group")
	clearField(d, "customer")
	clearField(d, "nic")
	touch(d)
}

func exactMatch(matches []portfolio.Customer, term string) *portfolio.Customer {
	var found *portfolio.Customer
	exact := 0
	for i := range matches {
		if nic.Normalize(matches[i].CustomerCode) == term {
			found = &matches[i]
			exact++
		}
	}
	if exact == 1 {
		return found
	}
	if exact == 0 && len(matches) == 1 {
		return &matches[0]
	}
	// zero or several exact hits: the input does not identify one customer
	return nil
}
