// Package sim drives permit trading: it spawns agents, runs the per-tick
// first-price sealed-bid auction over the order book, routes settlement
// notifications, and decides when the run is over.
package sim

import (
	"context"
	"crypto/sha256"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openuat/uatsim/agent"
	"github.com/openuat/uatsim/core"
)

// Factory produces the agents entering the market at a given tick. It is
// called once per tick with a seed derived from the run seed.
type Factory[R comparable] func(t core.Tick, seed int64) []agent.Agent[R]

// Trade is the public record of one settled permit transfer. From is
// core.NoOwner when the permit was bought on primary issuance.
type Trade[R comparable] struct {
	ID              uuid.UUID    `json:"id"`
	TransactionTime core.Tick    `json:"transaction_time"`
	From            core.AgentID `json:"from"`
	To              core.AgentID `json:"to"`
	Location        R            `json:"location"`
	Time            core.Tick    `json:"time"`
	Value           float64      `json:"value"`
}

// Fingerprint returns a hash of the trade's content, used by the journal
// to detect corruption.
//
// Formula: SHA256(id + "|" + transaction_time + "|" + from + "|" + to +
// "|" + location + "|" + time + "|" + sprintf("%.6f", value))
//
// The value is formatted to exactly 6 decimal places so the hash does not
// depend on how the float is represented in memory.
func (tr Trade[R]) Fingerprint() string {
	data := fmt.Sprintf("%s|%d|%d|%d|%v|%d|%.6f",
		tr.ID, tr.TransactionTime, tr.From, tr.To, tr.Location, tr.Time, tr.Value)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// StatusView lets a status callback inspect any permit without mutating
// the book.
type StatusView[R comparable] func(location R, t core.Tick) core.PermitView

// Options tunes a simulation run. The zero value runs an unbounded,
// silent simulation that stops when no agents remain active.
type Options[R comparable] struct {
	// TimeWindow bounds how far past the current tick permits may be
	// traded. Zero means unbounded.
	TimeWindow core.Tick

	// MaxTick, when non-zero, stops the run once the current tick exceeds
	// it, regardless of agent activity. When zero the run stops as soon
	// as no agents are active.
	MaxTick core.Tick

	// OnTrade is invoked for every settled trade.
	OnTrade func(Trade[R])

	// OnStatus is invoked at the start of every tick, before new agents
	// spawn, with the number of active agents and a read-only book view.
	OnStatus func(t core.Tick, active int, view StatusView[R])

	// Logger receives engine diagnostics. Defaults to zap.NewNop.
	Logger *zap.Logger
}

// Simulate runs the trading loop until the stop criteria in opts are met
// or ctx is cancelled. For a fixed factory and seed the run replays
// identically, except for trade record IDs, which are freshly generated.
//
// Each tick proceeds through: status callback, agent spawning, bid phase,
// trade settlement, ask phase, stop polling, window advance.
func Simulate[R comparable](ctx context.Context, factory Factory[R], seed int64, opts Options[R]) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rng := rand.New(rand.NewSource(seed))
	book := core.NewBook[R](opts.TimeWindow)
	reg := &registry[R]{}

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("simulation cancelled at tick %d: %w", book.Now(), err)
		}
		t := book.Now()

		if opts.OnStatus != nil {
			opts.OnStatus(t, reg.activeCount(), func(location R, tick core.Tick) core.PermitView {
				return book.View(core.NoOwner, location, tick)
			})
		}

		// Spawn
		for _, a := range factory(t, rng.Int63()) {
			id := reg.insert(a)
			logger.Debug("agent entered market", zap.Uint64("agent", uint64(id)), zap.Uint64("tick", uint64(t)))
		}

		// Bid phase
		for _, id := range reg.activeIDs() {
			bidder := id
			bid := func(location R, tick core.Tick, price float64) bool {
				return book.Bid(bidder, location, tick, price)
			}
			status := func(location R, tick core.Tick) core.PermitView {
				return book.View(bidder, location, tick)
			}
			if err := reg.at(id).BidPhase(t, bid, status, rng.Int63()); err != nil {
				return fmt.Errorf("agent %d bid phase at tick %d: %w", id, t, err)
			}
		}

		// Settlement
		for _, s := range book.Settle() {
			trade := Trade[R]{
				ID:              uuid.New(),
				TransactionTime: t,
				From:            s.Seller,
				To:              s.Buyer,
				Location:        s.Location,
				Time:            s.Time,
				Value:           s.Price,
			}
			logger.Debug("trade settled",
				zap.Uint64("buyer", uint64(trade.To)),
				zap.Uint64("permit_tick", uint64(trade.Time)),
				zap.Float64("value", trade.Value))
			if opts.OnTrade != nil {
				opts.OnTrade(trade)
			}

			if buyer, ok := reg.at(s.Buyer).(agent.BuyObserver[R]); ok {
				if err := buyer.OnBought(s.Location, s.Time, s.Price); err != nil {
					return fmt.Errorf("agent %d purchase notification at tick %d: %w", s.Buyer, t, err)
				}
			}
			if s.Seller != core.NoOwner && reg.isActive(s.Seller) {
				if seller, ok := reg.at(s.Seller).(agent.SellObserver[R]); ok {
					seller.OnSold(s.Location, s.Time, s.Price)
				}
			}
		}

		// Ask phase
		for _, id := range reg.activeIDs() {
			seller, ok := reg.at(id).(agent.Seller[R])
			if !ok {
				continue
			}
			owner := id
			ask := func(location R, tick core.Tick, price float64) bool {
				return book.Ask(owner, location, tick, price)
			}
			status := func(location R, tick core.Tick) core.PermitView {
				return book.View(owner, location, tick)
			}
			if err := seller.AskPhase(t, ask, status, rng.Int63()); err != nil {
				return fmt.Errorf("agent %d ask phase at tick %d: %w", id, t, err)
			}
		}
		book.ApplyAsks()

		// Stop polling
		keep := make([]core.AgentID, 0, reg.activeCount())
		for _, id := range reg.activeIDs() {
			if reg.at(id).Stop(t, rng.Int63()) {
				logger.Debug("agent retired", zap.Uint64("agent", uint64(id)), zap.Uint64("tick", uint64(t)))
				continue
			}
			keep = append(keep, id)
		}
		reg.setActive(keep)

		book.Advance()

		if opts.MaxTick > 0 {
			if book.Now() > opts.MaxTick {
				break
			}
		} else if reg.activeCount() == 0 {
			break
		}
	}

	logger.Info("simulation finished", zap.Uint64("ticks", uint64(book.Now())))
	return nil
}
