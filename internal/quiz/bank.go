package quiz

import "sync"

// Bank stores every question ever emitted, keyed by id. It only grows.
type Bank struct {
	mu        sync.RWMutex
	questions map[string]Question
}

// NewBank creates an empty question bank.
func NewBank() *Bank {
	return &Bank{questions: make(map[string]Question)}
}

// Put stores questions, replacing any with the same id.
func (b *Bank) Put(qs ...Question) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, q := range qs {
		b.questions[q.ID] = q.clone()
	}
}

// Get returns the question with the given id.
func (b *Bank) Get(id string) (Question, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	q, ok := b.questions[id]
	if !ok {
		return Question{}, false
	}
	return q.clone(), true
}

// Len returns the number of stored questions.
func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.questions)
}
