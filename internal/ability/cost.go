package ability

// Cost is a payable requirement gating an activated ability or alt-
// cost play. CanPay must be side-effect free so the move validator can
// call it freely while enumerating legal moves; Pay performs the
// actual payment. The engine calls Pay directly while handling the
// activate move, before the ability's effect is enqueued; the payment
// is not itself a queued action.
type Cost interface {
	CanPay(rc *ResolveContext, controllerID, sourceID string) bool
	Pay(rc *ResolveContext, controllerID, sourceID string)
}

type exertSelfCost struct{}

func (exertSelfCost) CanPay(rc *ResolveContext, controllerID, sourceID string) bool {
	src := rc.SourceInstance(sourceID)
	return src != nil && !src.Exerted && src.IsDry
}

func (exertSelfCost) Pay(rc *ResolveContext, controllerID, sourceID string) {
	if src := rc.SourceInstance(sourceID); src != nil {
		src.Exert()
	}
}

// ExertSelf is the cost of exerting the source character itself, the
// most common activated-ability cost.
func ExertSelf() Cost { return exertSelfCost{} }

type payInkCost struct{ amount int }

func (c payInkCost) CanPay(rc *ResolveContext, controllerID, sourceID string) bool {
	p := rc.State.PlayerByID(controllerID)
	return p != nil && p.AvailableInk() >= c.amount
}

func (c payInkCost) Pay(rc *ResolveContext, controllerID, sourceID string) {
	if p := rc.State.PlayerByID(controllerID); p != nil {
		p.SpendInk(c.amount)
	}
}

// PayInk is the cost of exerting n ink from the inkwell.
func PayInk(amount int) Cost { return payInkCost{amount} }

type discardCardsCost struct{ count int }

func (c discardCardsCost) CanPay(rc *ResolveContext, controllerID, sourceID string) bool {
	p := rc.State.PlayerByID(controllerID)
	return p != nil && len(p.Hand) >= c.count
}

func (c discardCardsCost) Pay(rc *ResolveContext, controllerID, sourceID string) {
	p := rc.State.PlayerByID(controllerID)
	if p == nil {
		return
	}
	n := c.count
	if n > len(p.Hand) {
		n = len(p.Hand)
	}
	for i := 0; i < n; i++ {
		p.MoveToDiscard(p.Hand[0])
	}
}

// DiscardCardsCost is the cost of discarding n cards from hand
// (distinct from the DiscardCards effect, which discards as a game
// action rather than a cost payment).
func DiscardCardsCost(count int) Cost { return discardCardsCost{count} }

// AllCosts composes multiple costs; CanPay requires every one to be
// payable, Pay pays them in order.
type compositeCost struct{ costs []Cost }

func (c compositeCost) CanPay(rc *ResolveContext, controllerID, sourceID string) bool {
	for _, cost := range c.costs {
		if !cost.CanPay(rc, controllerID, sourceID) {
			return false
		}
	}
	return true
}

func (c compositeCost) Pay(rc *ResolveContext, controllerID, sourceID string) {
	for _, cost := range c.costs {
		cost.Pay(rc, controllerID, sourceID)
	}
}

// AllCosts requires every one of the given costs to be paid.
func AllCosts(costs ...Cost) Cost { return compositeCost{costs} }
