package gazetribe

import (
	"slices"
	"testing"
)

type orderListener struct {
	id  int
	log *[]int
}

func (l *orderListener) OnConnectionStateChanged(bool) {
	*l.log = append(*l.log, l.id)
}

func TestRegistry_NotifyInOrder(t *testing.T) {
	var r registry[ConnectionStateListener]
	var log []int

	first := &orderListener{id: 1, log: &log}
	second := &orderListener{id: 2, log: &log}
	third := &orderListener{id: 3, log: &log}

	r.add(first)
	r.add(second)
	r.add(third)

	r.notify(func(l ConnectionStateListener) {
		l.OnConnectionStateChanged(true)
	})

	if !slices.Equal(log, []int{1, 2, 3}) {
		t.Errorf("notification order = %v, want [1 2 3]", log)
	}
}

func TestRegistry_DuplicateAdd(t *testing.T) {
	var r registry[ConnectionStateListener]
	var log []int

	l := &orderListener{id: 1, log: &log}
	r.add(l)
	r.add(l)

	r.notify(func(l ConnectionStateListener) {
		l.OnConnectionStateChanged(true)
	})

	if len(log) != 1 {
		t.Errorf("listener notified %d times, want 1", len(log))
	}
}

func TestRegistry_Remove(t *testing.T) {
	var r registry[ConnectionStateListener]
	var log []int

	first := &orderListener{id: 1, log: &log}
	second := &orderListener{id: 2, log: &log}

	r.add(first)
	r.add(second)
	r.remove(first)

	// Removing an unregistered listener is a no-op.
	r.remove(&orderListener{id: 9, log: &log})

	r.notify(func(l ConnectionStateListener) {
		l.OnConnectionStateChanged(false)
	})

	if !slices.Equal(log, []int{2}) {
		t.Errorf("log = %v, want [2]", log)
	}
}
