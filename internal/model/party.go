package model

import (
	"fmt"
	"sync"
)

// MaxPartyMembers is the maximum roster size (leader + 5 members).
const MaxPartyMembers = 6

// Party is the player-side roster: the leader and every captured or
// recruited member are mutually allied. Thread-safe: all methods acquire
// the internal mutex.
type Party struct {
	mu      sync.RWMutex
	leader  Actor
	members []Actor // leader is always the first element
}

// NewParty creates a party with the given leader.
// The leader is automatically the first member.
func NewParty(leader Actor) *Party {
	p := &Party{
		leader:  leader,
		members: make([]Actor, 0, MaxPartyMembers),
	}
	p.members = append(p.members, leader)
	return p
}

// Leader returns the party leader.
func (p *Party) Leader() Actor {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.leader
}

// AddMember appends an actor to the roster.
// Returns an error if the party is full or the actor is already a member.
func (p *Party) AddMember(a Actor) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.members) >= MaxPartyMembers {
		return fmt.Errorf("party is full (%d members)", MaxPartyMembers)
	}
	for _, m := range p.members {
		if m.ID() == a.ID() {
			return fmt.Errorf("actor %s already in party", a.ID())
		}
	}
	p.members = append(p.members, a)
	return nil
}

// RemoveMember removes an actor by ID. The leader cannot be removed.
// Returns false if the actor was not a member.
func (p *Party) RemoveMember(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, m := range p.members {
		if m.ID() == id {
			if i == 0 {
				return false
			}
			p.members = append(p.members[:i], p.members[i+1:]...)
			return true
		}
	}
	return false
}

// IsMember reports whether the actor ID belongs to the roster.
func (p *Party) IsMember(id string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, m := range p.members {
		if m.ID() == id {
			return true
		}
	}
	return false
}

// Member returns the roster member with the given ID, nil if absent.
func (p *Party) Member(id string) Actor {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, m := range p.members {
		if m.ID() == id {
			return m
		}
	}
	return nil
}

// Members returns a copy of the roster in join order.
func (p *Party) Members() []Actor {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Actor, len(p.members))
	copy(out, p.members)
	return out
}

// MemberCount returns the current roster size.
func (p *Party) MemberCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.members)
}
