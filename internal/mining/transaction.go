// Package mining implements the transaction that moves ore from an asteroid
// into a ship's cargo at the end of a mining cycle.
package mining

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"void-miner/internal/ecs"
	"void-miner/internal/inventory"
)

// ErrInvariant reports a state the transaction's own checks should have ruled
// out. It indicates a bug, not a gameplay outcome.
var ErrInvariant = errors.New("mining invariant violated")

// Node is the view of a resource node the transaction needs.
type Node interface {
	ID() ecs.EntityID
	Active() bool
	Resource() inventory.ResourceType
	Store() *inventory.Store
}

// Observer receives mining notifications for presentation. Calls must not block.
type Observer interface {
	OnResourceMined(node ecs.EntityID, resource inventory.ResourceType, amount int, tier Tier)
	OnInventoryFull()
}

// Outcome is the result class of one transaction.
type Outcome uint8

const (
	Mined     Outcome = iota // ore moved (possibly fewer units than rolled)
	NoTarget                 // no node, or the node is gone
	Depleted                 // node has nothing left
	NoCargo                  // ship has no cargo hold
	NoYield                  // the roll produced zero units
	CargoFull                // ship cargo has no space at all
	Failed                   // invariant violation, see ErrInvariant
)

func (o Outcome) String() string {
	switch o {
	case Mined:
		return "mined"
	case NoTarget:
		return "no target"
	case Depleted:
		return "depleted"
	case NoCargo:
		return "no cargo"
	case NoYield:
		return "no yield"
	case CargoFull:
		return "cargo full"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}

// Result describes what one transaction did.
type Result struct {
	Outcome  Outcome
	Resource inventory.ResourceType
	Tier     Tier
	Raw      int // floor(base * multiplier), before the cargo cap
	Amount   int // units actually moved
}

// OK reports whether ore moved.
func (r Result) OK() bool { return r.Outcome == Mined }

// Transaction carries the per-module mining parameters.
type Transaction struct {
	OrePerCycle int
	Odds        Odds
	Roller      Roller   // nil uses the global math/rand source
	Observer    Observer // optional
	Logger      *slog.Logger
}

func (tx *Transaction) logger() *slog.Logger {
	if tx.Logger != nil {
		return tx.Logger
	}
	return slog.Default()
}

// Execute mines node into cargo. Expected failures leave every store
// untouched and are reported through Result; only invariant violations
// return an error.
func (tx *Transaction) Execute(node Node, cargo *inventory.Store) (Result, error) {
	log := tx.logger()

	// 1. Validate.
	if node == nil || !node.Active() || node.Store() == nil {
		log.Debug("mining: no target")
		return Result{Outcome: NoTarget}, nil
	}
	res := node.Resource()
	if cargo == nil {
		log.Debug("mining: ship has no cargo hold", "asteroid", node.ID())
		return Result{Outcome: NoCargo, Resource: res}, nil
	}
	remaining := node.Store().Quantity(res)
	if remaining <= 0 {
		log.Debug("mining: asteroid depleted", "asteroid", node.ID())
		return Result{Outcome: Depleted, Resource: res}, nil
	}

	// 2. Roll the hit tier.
	var r float64
	if tx.Roller != nil {
		r = tx.Roller.Float64()
	} else {
		r = rand.Float64()
	}
	tier := tx.Odds.Classify(r)

	// 3. Amount before the cargo cap.
	base := min(tx.OrePerCycle, remaining)
	raw := int(math.Floor(float64(base) * tier.Multiplier()))
	if raw <= 0 {
		return Result{Outcome: NoYield, Resource: res, Tier: tier}, nil
	}

	// 4. Cap by free cargo space. A tier bonus can push raw past what the
	// node still holds, so the node quantity caps it as well.
	amount := min(raw, cargo.AvailableSpace(), remaining)
	if amount <= 0 {
		log.Debug("mining: cargo full", "asteroid", node.ID(), "raw", raw)
		if tx.Observer != nil {
			tx.Observer.OnInventoryFull()
		}
		return Result{Outcome: CargoFull, Resource: res, Tier: tier, Raw: raw}, nil
	}

	// 5. Move the ore, node side first.
	if !node.Store().Remove(res, amount) {
		return Result{Outcome: Failed, Resource: res, Tier: tier, Raw: raw},
			fmt.Errorf("remove %d %v from asteroid %d: %w", amount, res, node.ID(), ErrInvariant)
	}
	if !cargo.Add(res, amount) {
		return Result{Outcome: Failed, Resource: res, Tier: tier, Raw: raw},
			fmt.Errorf("add %d %v to cargo after space check: %w", amount, res, ErrInvariant)
	}

	// 6. Notify.
	if tx.Observer != nil {
		tx.Observer.OnResourceMined(node.ID(), res, amount, tier)
	}
	return Result{Outcome: Mined, Resource: res, Tier: tier, Raw: raw, Amount: amount}, nil
}
