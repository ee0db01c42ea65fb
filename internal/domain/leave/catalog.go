package leave

// CatalogEntry holds the policy for one leave type.
type CatalogEntry struct {
	Allocation     int // default annual allocation in days
	CarryOverDepth int // how many prior years remain usable (0-2)
}

// Catalog is the static lookup of leave type policies. Read-only at
// runtime; allocation overrides are a configuration concern.
type Catalog struct {
	entries map[LeaveType]CatalogEntry
}

// Allocations follow the civil-service leave card the system replaces:
// annual leave carries over two years, everything else expires yearly.
var defaultEntries = map[LeaveType]CatalogEntry{
	LeaveTypeAnnual:        {Allocation: 12, CarryOverDepth: 2},
	LeaveTypeSick:          {Allocation: 12, CarryOverDepth: 0},
	LeaveTypeMaternity:     {Allocation: 90, CarryOverDepth: 0},
	LeaveTypeExtended:      {Allocation: 90, CarryOverDepth: 0},
	LeaveTypeSpecialReason: {Allocation: 60, CarryOverDepth: 0},
	LeaveTypeUnpaid:        {Allocation: 365, CarryOverDepth: 0},
}

func NewCatalog() *Catalog {
	entries := make(map[LeaveType]CatalogEntry, len(defaultEntries))
	for t, e := range defaultEntries {
		entries[t] = e
	}
	return &Catalog{entries: entries}
}

// NewCatalogWithOverrides replaces default allocations for the given
// types. Unknown types in the override map are ignored.
func NewCatalogWithOverrides(overrides map[LeaveType]int) *Catalog {
	c := NewCatalog()
	for t, allocation := range overrides {
		entry, ok := c.entries[t]
		if !ok || allocation <= 0 {
			continue
		}
		entry.Allocation = allocation
		c.entries[t] = entry
	}
	return c
}

// Valid reports whether t is a known leave type.
func (c *Catalog) Valid(t LeaveType) bool {
	_, ok := c.entries[t]
	return ok
}

// DefaultAllocation returns the annual allocation in days for t.
// Fails with ErrUnknownLeaveType for types outside the catalog.
func (c *Catalog) DefaultAllocation(t LeaveType) (int, error) {
	entry, ok := c.entries[t]
	if !ok {
		return 0, ErrUnknownLeaveType
	}
	return entry.Allocation, nil
}

// CarryOverDepth returns how many prior years of unused entitlement
// remain usable for t.
func (c *Catalog) CarryOverDepth(t LeaveType) (int, error) {
	entry, ok := c.entries[t]
	if !ok {
		return 0, ErrUnknownLeaveType
	}
	return entry.CarryOverDepth, nil
}

// Types returns all catalog leave types in a stable order.
func (c *Catalog) Types() []LeaveType {
	ordered := []LeaveType{
		LeaveTypeAnnual,
		LeaveTypeSick,
		LeaveTypeMaternity,
		LeaveTypeExtended,
		LeaveTypeSpecialReason,
		LeaveTypeUnpaid,
	}
	types := make([]LeaveType, 0, len(ordered))
	for _, t := range ordered {
		if _, ok := c.entries[t]; ok {
			types = append(types, t)
		}
	}
	return types
}
