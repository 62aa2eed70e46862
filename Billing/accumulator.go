package Billing

// LineItem is one (service, quantity) pair selected for billing within a
// visit. Quantity is never below 1; an entry that would drop to 0 is removed
// from the accumulator instead.
type LineItem struct {
	ServiceID uint `json:"service_id"`
	Quantity  uint `json:"quantity"`
}

// Accumulator holds the services selected on an in-progress visit form.
// Single writer, single reader within one form session.
type Accumulator struct {
	quantities map[uint]uint
	order      []uint
}

func NewAccumulator() *Accumulator {
	return &Accumulator{quantities: make(map[uint]uint)}
}

// Add inserts the service with quantity 1, or increments it when already
// selected.
func (a *Accumulator) Add(serviceID uint) {
	if _, ok := a.quantities[serviceID]; ok {
		a.quantities[serviceID]++
		return
	}
	a.quantities[serviceID] = 1
	a.order = append(a.order, serviceID)
}

// AddN inserts the service with quantity n, or grows an existing entry by n.
// Adding zero changes nothing.
func (a *Accumulator) AddN(serviceID uint, n uint) {
	if n == 0 {
		return
	}
	if _, ok := a.quantities[serviceID]; ok {
		a.quantities[serviceID] += n
		return
	}
	a.quantities[serviceID] = n
	a.order = append(a.order, serviceID)
}

// Increment bumps the quantity of an already selected service. Unknown ids
// are a no-op.
func (a *Accumulator) Increment(serviceID uint) {
	if _, ok := a.quantities[serviceID]; !ok {
		return
	}
	a.quantities[serviceID]++
}

// Decrement lowers the quantity by one. At quantity 1 the entry is removed
// entirely. Unknown ids are a no-op.
func (a *Accumulator) Decrement(serviceID uint) {
	qty, ok := a.quantities[serviceID]
	if !ok {
		return
	}
	if qty <= 1 {
		a.Remove(serviceID)
		return
	}
	a.quantities[serviceID] = qty - 1
}

// Remove deletes the entry unconditionally.
func (a *Accumulator) Remove(serviceID uint) {
	if _, ok := a.quantities[serviceID]; !ok {
		return
	}
	delete(a.quantities, serviceID)
	for index, id := range a.order {
		if id == serviceID {
			a.order = append(a.order[:index], a.order[index+1:]...)
			break
		}
	}
}

// Quantity reports the selected quantity for a service, 0 when not selected.
func (a *Accumulator) Quantity(serviceID uint) uint {
	return a.quantities[serviceID]
}

// Snapshot exports the selection in insertion order for serialization.
func (a *Accumulator) Snapshot() []LineItem {
	items := make([]LineItem, 0, len(a.order))
	for _, id := range a.order {
		items = append(items, LineItem{ServiceID: id, Quantity: a.quantities[id]})
	}
	return items
}

// NormalizeLineItems folds a wire-level selection into one entry per
// service, summing quantities and keeping first-seen order. Zero quantities
// are rejected rather than silently dropped so the caller surfaces the
// right error.
func NormalizeLineItems(items []LineItem) ([]LineItem, error) {
	acc := NewAccumulator()
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		acc.AddN(item.ServiceID, item.Quantity)
	}
	return acc.Snapshot(), nil
}
