package core

// permitState tracks the private lifecycle of a permit inside the book.
type permitState int

const (
	stateOnSale permitState = iota
	stateInUse
)

// permitRecord is the book's private view of one permit. A permit that has
// never been touched is on sale by NoOwner at min value zero.
type permitRecord struct {
	state         permitState
	owner         AgentID
	minValue      float64
	highestBidder AgentID
	highestBid    float64
	history       []TradeValue
}

func newPermitRecord() *permitRecord {
	return &permitRecord{
		state:         stateOnSale,
		owner:         NoOwner,
		highestBidder: NoOwner,
	}
}

// Settlement is the outcome of one permit auction at the end of a bid
// phase. Seller is NoOwner for primary issuance.
type Settlement[R comparable] struct {
	Location R
	Time     Tick
	Seller   AgentID
	Buyer    AgentID
	MinValue float64
	Price    float64
}

type pendingAsk[R comparable] struct {
	permit   Permit[R]
	owner    AgentID
	minValue float64
}

// Book runs first-price sealed-bid auctions over permits. It keeps a
// sliding window of per-tick permit records starting at the current tick;
// records before the current tick are discarded on Advance and permits
// beyond the optional time window are out of limits.
//
// The Book is not safe for concurrent use. The simulation driver invokes
// it from a single goroutine.
type Book[R comparable] struct {
	now        Tick
	timeWindow Tick // 0 means unbounded
	frames     []map[Permit[R]]*permitRecord
	pending    []Permit[R]
	asks       []pendingAsk[R]
}

// NewBook creates an empty book at tick zero. A non-zero timeWindow bounds
// how far past the current tick permits may be traded: a permit at tick t
// is out of limits when t > now+1+timeWindow.
func NewBook[R comparable](timeWindow Tick) *Book[R] {
	return &Book[R]{timeWindow: timeWindow}
}

// Now returns the current tick.
func (b *Book[R]) Now() Tick { return b.now }

// inLimits reports whether the permit tick is inside the trading window.
func (b *Book[R]) inLimits(t Tick) bool {
	if t < b.now {
		return false
	}
	if b.timeWindow > 0 && t > b.now+1+b.timeWindow {
		return false
	}
	return true
}

// record returns the mutable record for a permit, materializing the frame
// and the default on-sale record on first access. The caller must have
// checked inLimits.
func (b *Book[R]) record(p Permit[R]) *permitRecord {
	idx := int(p.Time - b.now)
	for idx >= len(b.frames) {
		b.frames = append(b.frames, make(map[Permit[R]]*permitRecord))
	}
	rec, ok := b.frames[idx][p]
	if !ok {
		rec = newPermitRecord()
		b.frames[idx][p] = rec
	}
	return rec
}

// lookup is the read-only counterpart of record: it never materializes
// state, so status queries leave the book untouched.
func (b *Book[R]) lookup(p Permit[R]) *permitRecord {
	idx := int(p.Time - b.now)
	if idx >= len(b.frames) {
		return nil
	}
	return b.frames[idx][p]
}

// Bid submits a sealed bid on a permit for the given bidder. It returns
// false when the permit is out of limits or already in use. On an on-sale
// permit the bid is recorded iff the price strictly beats both the min
// value and the current highest bid; the return value is true either way,
// mirroring an exchange that accepts an order without revealing whether
// it leads.
func (b *Book[R]) Bid(bidder AgentID, location R, t Tick, price float64) bool {
	if !b.inLimits(t) {
		return false
	}
	p := Permit[R]{Location: location, Time: t}
	rec := b.record(p)
	if rec.state != stateOnSale {
		return false
	}
	if BidBeats(price, rec.minValue) && BidBeats(price, rec.highestBid) {
		if rec.highestBidder == NoOwner {
			b.pending = append(b.pending, p)
		}
		rec.highestBidder = bidder
		rec.highestBid = price
	}
	return true
}

// Settle closes the auctions opened during the current bid phase. Every
// permit that attracted at least one leading bid transfers to its highest
// bidder, who pays its own bid (first price). Settlements are returned in
// the order the first bid on each permit arrived.
func (b *Book[R]) Settle() []Settlement[R] {
	settlements := make([]Settlement[R], 0, len(b.pending))
	for _, p := range b.pending {
		rec := b.record(p)
		settlements = append(settlements, Settlement[R]{
			Location: p.Location,
			Time:     p.Time,
			Seller:   rec.owner,
			Buyer:    rec.highestBidder,
			MinValue: rec.minValue,
			Price:    rec.highestBid,
		})

		rec.history = append(rec.history, TradeValue{MinValue: rec.minValue, BidValue: rec.highestBid})
		rec.state = stateInUse
		rec.owner = rec.highestBidder
		rec.minValue = 0
		rec.highestBidder = NoOwner
		rec.highestBid = 0
	}
	b.pending = b.pending[:0]
	return settlements
}

// Ask queues a relisting of a permit the owner holds, at a new min value.
// Ownership is checked immediately; the listing itself takes effect only
// on ApplyAsks, so agents acting later in the same phase do not observe
// earlier asks.
func (b *Book[R]) Ask(owner AgentID, location R, t Tick, price float64) bool {
	if !b.inLimits(t) {
		return false
	}
	rec := b.record(Permit[R]{Location: location, Time: t})
	if rec.owner != owner {
		return false
	}
	b.asks = append(b.asks, pendingAsk[R]{
		permit:   Permit[R]{Location: location, Time: t},
		owner:    owner,
		minValue: price,
	})
	return true
}

// ApplyAsks makes the queued relistings visible.
func (b *Book[R]) ApplyAsks() {
	for _, a := range b.asks {
		rec := b.record(a.permit)
		rec.state = stateOnSale
		rec.owner = a.owner
		rec.minValue = a.minValue
		rec.highestBidder = NoOwner
		rec.highestBid = 0
	}
	b.asks = b.asks[:0]
}

// View reports the public status of a permit as seen by one observer.
// Out-of-limits permits are unavailable. A permit the observer holds is
// owned; one it has on sale is unavailable (it cannot buy back its own
// listing); anything on sale by another party is available, with the min
// value and trade history exposed.
func (b *Book[R]) View(observer AgentID, location R, t Tick) PermitView {
	if !b.inLimits(t) {
		return PermitView{Status: StatusUnavailable}
	}
	rec := b.lookup(Permit[R]{Location: location, Time: t})
	if rec == nil {
		// Untouched permits are on primary sale at min value zero.
		return PermitView{Status: StatusAvailable}
	}
	// NoOwner doubles as the anonymous observer used by status callbacks;
	// it never owns anything it could see as owned or unavailable.
	switch rec.state {
	case stateInUse:
		if rec.owner == observer && observer != NoOwner {
			return PermitView{Status: StatusOwned}
		}
		return PermitView{Status: StatusUnavailable}
	default:
		if rec.owner == observer && observer != NoOwner {
			return PermitView{Status: StatusUnavailable}
		}
		history := make([]TradeValue, len(rec.history))
		copy(history, rec.history)
		return PermitView{Status: StatusAvailable, MinValue: rec.minValue, History: history}
	}
}

// Advance moves the book to the next tick, discarding the frame for the
// tick that just elapsed.
func (b *Book[R]) Advance() {
	if len(b.frames) > 0 {
		b.frames = b.frames[1:]
	}
	b.now++
}
