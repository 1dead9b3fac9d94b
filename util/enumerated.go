package util

import (
	"fmt"
	"sync"
)

// EnumSet is a bidirectional string <-> dense int enumeration
type EnumSet struct {
	mu     sync.RWMutex
	Enum   map[string]int
	Index  []string
	Frozen bool
}

func (e *EnumSet) Add(value string) (int, bool) {
	if e.Frozen {
		panic("Cannot add value to frozen enum set")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	enum, exists := e.Enum[value]
	if exists {
		return enum, false
	}
	enum = len(e.Index)
	e.Enum[value] = enum
	e.Index = append(e.Index, value)
	return enum, true
}

// Set binds value to an explicit index, growing the index as needed.
// Label files are loaded with Set so the enumeration matches the ids used
// in the forests even when a name repeats.
func (e *EnumSet) Set(index int, value string) error {
	if e.Frozen {
		return fmt.Errorf("cannot set value %q on frozen enum set", value)
	}
	if index < 0 {
		return fmt.Errorf("negative index %d for value %q", index, value)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for len(e.Index) <= index {
		e.Index = append(e.Index, "")
	}
	if prev := e.Index[index]; len(prev) > 0 && prev != value {
		return fmt.Errorf("index %d already bound to %q, cannot rebind to %q", index, prev, value)
	}
	e.Index[index] = value
	if _, exists := e.Enum[value]; !exists {
		e.Enum[value] = index
	}
	return nil
}

func (e *EnumSet) IndexOf(value string) (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	enum, exists := e.Enum[value]
	return enum, exists
}

// ValueOf returns the value at index; ok is false for indices never bound
func (e *EnumSet) ValueOf(index int) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if index < 0 || index >= len(e.Index) {
		return "", false
	}
	value := e.Index[index]
	return value, len(value) > 0
}

func (e *EnumSet) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.Index)
}

func NewEnumSet(capacity int) *EnumSet {
	e := &EnumSet{
		sync.RWMutex{},
		make(map[string]int, capacity),
		make([]string, 0, capacity),
		false,
	}
	return e
}
