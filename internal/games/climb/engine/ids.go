package engine

// IDAllocator hands out PlatformIDs scoped to a session.
type IDAllocator struct {
	session uint32
	next    uint32
}

// NewSession starts a fresh id space. Ids from earlier sessions never
// compare equal to new ones.
func (a *IDAllocator) NewSession() uint32 {
	a.session++
	a.next = 0
	return a.session
}

// Session returns the current session number.
func (a *IDAllocator) Session() uint32 {
	return a.session
}

// Next returns a new id in the current session.
func (a *IDAllocator) Next() PlatformID {
	if a.session == 0 {
		a.NewSession()
	}
	a.next++
	return PlatformID{Session: a.session, Local: a.next}
}
