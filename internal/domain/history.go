package domain

// History is the append-only ledger of a negotiation: one offer sequence
// per party, in round order, plus any pressure events that occurred.
// Entries are never reordered or removed.
type History struct {
	corporateOffers []Offer
	nonprofitOffers []Offer
	events          []Event
}

func NewHistory() *History {
	return &History{}
}

// AddOffer appends an offer to the given party's sequence. Offers for an
// unknown party are dropped silently, mirroring the ledger's append-only
// contract: there is nothing sensible to do with them.
func (h *History) AddOffer(party Party, offer Offer) {
	switch party {
	case PartyCorporate:
		h.corporateOffers = append(h.corporateOffers, offer)
	case PartyNonprofit:
		h.nonprofitOffers = append(h.nonprofitOffers, offer)
	}
}

// LastOffer returns the most recent offer for a party, if any.
func (h *History) LastOffer(party Party) (Offer, bool) {
	var offers []Offer
	switch party {
	case PartyCorporate:
		offers = h.corporateOffers
	case PartyNonprofit:
		offers = h.nonprofitOffers
	}

	if len(offers) == 0 {
		return Offer{}, false
	}
	return offers[len(offers)-1], true
}

// Offers returns a copy of a party's offer sequence in round order.
func (h *History) Offers(party Party) []Offer {
	var offers []Offer
	switch party {
	case PartyCorporate:
		offers = h.corporateOffers
	case PartyNonprofit:
		offers = h.nonprofitOffers
	}

	out := make([]Offer, len(offers))
	copy(out, offers)
	return out
}

func (h *History) AddEvent(event Event) {
	h.events = append(h.events, event)
}

// Events returns a copy of the event ledger in occurrence order.
func (h *History) Events() []Event {
	out := make([]Event, len(h.events))
	copy(out, h.events)
	return out
}
