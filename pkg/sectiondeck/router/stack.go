package router

// StackEntry is a view the visitor is expected to return to.
type StackEntry struct {
	Screen Screen
	Input  any // Input the view was last run with
	Resume any // Position to restore, nil for stateless views
}

// Stack holds the views behind the current one.
type Stack struct {
	entries []StackEntry
}

// NewStack creates an empty Stack.
func NewStack() *Stack {
	return &Stack{}
}

func (s *Stack) Push(screen Screen, input any, resume any) {
	s.entries = append(s.entries, StackEntry{Screen: screen, Input: input, Resume: resume})
}

// Pop removes the top entry. It returns nil on an empty stack.
func (s *Stack) Pop() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &entry
}

// Peek returns the top entry without removing it, or nil.
func (s *Stack) Peek() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[len(s.entries)-1]
}

func (s *Stack) IsEmpty() bool { return len(s.entries) == 0 }
func (s *Stack) Len() int      { return len(s.entries) }
func (s *Stack) Clear()        { s.entries = s.entries[:0] }
