package pqueue

import "testing"

func TestPopsHighestPriorityFirst(t *testing.T) {
	testData := []struct {
		priority int
		item     string
	}{
		{3, "Clear drains"},
		{6, "drink tea"},
		{5, "Make tea"},
		{4, "Feed cat"},
		{7, "eat biscuit"},
		{2, "Tax return"},
		{1, "Solve RC tasks"},
	}

	q := New[string]()
	for _, d := range testData {
		q.Push(d.priority, d.item)
	}
	if q.Len() != len(testData) {
		t.Fatalf("Len() = %d, want %d", q.Len(), len(testData))
	}

	expected := []string{
		"eat biscuit",
		"drink tea",
		"Make tea",
		"Feed cat",
		"Clear drains",
		"Tax return",
		"Solve RC tasks",
	}
	for i, want := range expected {
		got, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop() #%d reported empty queue", i)
		}
		if got != want {
			t.Errorf("Pop() #%d = %q, want %q", i, got, want)
		}
	}
	if q.Len() != 0 {
		t.Errorf("Len() after draining = %d, want 0", q.Len())
	}
}

func TestTiesAreFIFO(t *testing.T) {
	var q Queue[int]
	q.Push(1, 10)
	q.Push(5, 50)
	q.Push(1, 11)
	q.Push(5, 51)
	q.Push(1, 12)

	expected := []int{50, 51, 10, 11, 12}
	for i, want := range expected {
		got, _ := q.Pop()
		if got != want {
			t.Errorf("Pop() #%d = %d, want %d", i, got, want)
		}
	}
}

func TestPopEmpty(t *testing.T) {
	q := New[string]()
	if item, ok := q.Pop(); ok || item != "" {
		t.Errorf("Pop() on empty queue = (%q, %v), want (\"\", false)", item, ok)
	}

	q.Push(-3, "a")
	q.Pop()
	if _, ok := q.Pop(); ok {
		t.Error("Pop() after draining reported an item")
	}
	q.Push(-1, "b")
	if got, _ := q.Pop(); got != "b" {
		t.Errorf("Pop() after refill = %q, want %q", got, "b")
	}
}
