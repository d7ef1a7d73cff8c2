package core

import (
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
)

func TestBook_UntouchedPermitIsOnPrimarySale(t *testing.T) {
	book := NewBook[string](0)

	view := book.View(1, "R1", 3)
	check.Equal(t, StatusAvailable, view.Status)
	check.Equal(t, 0.0, view.MinValue)
	check.Equal(t, 0, len(view.History))
}

func TestBook_HighestBidWinsAndPaysOwnBid(t *testing.T) {
	book := NewBook[string](0)

	check.True(t, book.Bid(1, "R1", 2, 1.5))
	check.True(t, book.Bid(2, "R1", 2, 2.5))
	check.True(t, book.Bid(3, "R1", 2, 2.0)) // accepted but not leading

	settlements := book.Settle()
	assert.Equal(t, 1, len(settlements))

	// First-price: agent 2 pays its own bid.
	check.Equal(t, AgentID(2), settlements[0].Buyer)
	check.Equal(t, NoOwner, settlements[0].Seller)
	check.Equal(t, 2.5, settlements[0].Price)

	// The permit is now in use by the winner.
	check.Equal(t, StatusOwned, book.View(2, "R1", 2).Status)
	check.Equal(t, StatusUnavailable, book.View(1, "R1", 2).Status)
}

func TestBook_BidMustBeatHighestBid(t *testing.T) {
	book := NewBook[string](0)

	check.True(t, book.Bid(1, "R1", 1, 2.0))
	// Equal price does not displace the leader.
	check.True(t, book.Bid(2, "R1", 1, 2.0))

	settlements := book.Settle()
	assert.Equal(t, 1, len(settlements))
	check.Equal(t, AgentID(1), settlements[0].Buyer)
}

func TestBook_BidOnPastTickRejected(t *testing.T) {
	book := NewBook[string](0)
	book.Advance()
	book.Advance() // now = 2

	check.False(t, book.Bid(1, "R1", 1, 5.0))
	check.Equal(t, 0, len(book.Settle()))
}

func TestBook_TimeWindowLimitsTrading(t *testing.T) {
	// Window 2 at tick 0: permits up to tick 3 tradable, tick 4 is out.
	book := NewBook[string](2)

	check.Equal(t, StatusAvailable, book.View(1, "R1", 3).Status)
	check.Equal(t, StatusUnavailable, book.View(1, "R1", 4).Status)
	check.False(t, book.Bid(1, "R1", 4, 1.0))

	// Advancing slides the window forward.
	book.Advance()
	check.Equal(t, StatusAvailable, book.View(1, "R1", 4).Status)
}

func TestBook_BidOnInUsePermitRejected(t *testing.T) {
	book := NewBook[string](0)

	check.True(t, book.Bid(1, "R1", 2, 1.0))
	book.Settle()

	check.False(t, book.Bid(2, "R1", 2, 10.0))
}

func TestBook_SettlementOrderFollowsFirstBid(t *testing.T) {
	book := NewBook[string](0)

	book.Bid(1, "B", 1, 1.0)
	book.Bid(1, "A", 2, 1.0)
	book.Bid(2, "B", 1, 2.0) // outbids, but B keeps its settlement slot

	settlements := book.Settle()
	assert.Equal(t, 2, len(settlements))
	check.Equal(t, "B", settlements[0].Location)
	check.Equal(t, "A", settlements[1].Location)
}

func TestBook_AskRelistsOwnedPermit(t *testing.T) {
	book := NewBook[string](0)

	book.Bid(1, "R1", 2, 1.0)
	book.Settle()

	// Only the owner may relist.
	check.False(t, book.Ask(2, "R1", 2, 3.0))
	check.True(t, book.Ask(1, "R1", 2, 3.0))

	// The listing is invisible until asks are applied.
	check.Equal(t, StatusUnavailable, book.View(2, "R1", 2).Status)
	book.ApplyAsks()

	view := book.View(2, "R1", 2)
	check.Equal(t, StatusAvailable, view.Status)
	check.Equal(t, 3.0, view.MinValue)

	// The seller cannot buy back its own listing.
	check.Equal(t, StatusUnavailable, book.View(1, "R1", 2).Status)
}

func TestBook_RelistedPermitRequiresBeatingMinValue(t *testing.T) {
	book := NewBook[string](0)

	book.Bid(1, "R1", 2, 1.0)
	book.Settle()
	book.Ask(1, "R1", 2, 3.0)
	book.ApplyAsks()

	// A bid at the min value is not enough; it must strictly beat it.
	book.Bid(2, "R1", 2, 3.0)
	check.Equal(t, 0, len(book.Settle()))

	book.Bid(2, "R1", 2, 3.5)
	settlements := book.Settle()
	assert.Equal(t, 1, len(settlements))
	check.Equal(t, AgentID(1), settlements[0].Seller)
	check.Equal(t, AgentID(2), settlements[0].Buyer)
	check.Equal(t, 3.5, settlements[0].Price)
}

func TestBook_HistoryAccumulatesAcrossTrades(t *testing.T) {
	book := NewBook[string](0)

	book.Bid(1, "R1", 3, 1.0)
	book.Settle()
	book.Ask(1, "R1", 3, 2.0)
	book.ApplyAsks()
	book.Bid(2, "R1", 3, 2.5)
	book.Settle()
	book.Ask(2, "R1", 3, 0)
	book.ApplyAsks()

	view := book.View(3, "R1", 3)
	assert.Equal(t, 2, len(view.History))
	check.Equal(t, TradeValue{MinValue: 0, BidValue: 1.0}, view.History[0])
	check.Equal(t, TradeValue{MinValue: 2.0, BidValue: 2.5}, view.History[1])
}

func TestBook_AnonymousObserverSeesListings(t *testing.T) {
	book := NewBook[string](0)

	// Status callbacks observe as NoOwner; a fresh listing owned by NoOwner
	// must still read as available to them.
	book.Bid(1, "R1", 1, 1.0)
	check.Equal(t, StatusAvailable, book.View(NoOwner, "R1", 1).Status)
}

func TestBook_AdvanceDropsElapsedTick(t *testing.T) {
	book := NewBook[string](0)

	book.Bid(1, "R1", 0, 1.0)
	book.Settle()
	check.Equal(t, StatusOwned, book.View(1, "R1", 0).Status)

	book.Advance()
	check.Equal(t, Tick(1), book.Now())
	check.Equal(t, StatusUnavailable, book.View(1, "R1", 0).Status)
}
