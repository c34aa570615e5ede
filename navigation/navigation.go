// Package navigation is the fixed stack of named screens and the typed
// parameter contracts between them. There is exactly one parameter shape per
// route.
package navigation

type Screen int

const (
	Login Screen = iota
	Register
	SpotDirectory
	SpotCreate
	MapExplorer
	ChatList
	Chat
	Profile
)

func (s Screen) String() string {
	switch s {
	case Login:
		return "Login"
	case Register:
		return "Register"
	case SpotDirectory:
		return "SpotDirectory"
	case SpotCreate:
		return "SpotCreate"
	case MapExplorer:
		return "MapExplorer"
	case ChatList:
		return "ChatList"
	case Chat:
		return "Chat"
	case Profile:
		return "Profile"
	}
	return "Unknown"
}

// ChatParams is the single canonical parameter shape for the chat route,
// replacing the two conflicting shapes the app historically used.
type ChatParams struct {
	SelfUserID    string
	CounterpartID string
}

type ProfileParams struct {
	UserID int
}

// Entry pairs a screen with its parameters. Routes without parameters carry
// nil.
type Entry struct {
	Screen Screen
	Params any
}

func ChatEntry(p ChatParams) Entry       { return Entry{Screen: Chat, Params: p} }
func ProfileEntry(p ProfileParams) Entry { return Entry{Screen: Profile, Params: p} }

// Stack is the screen history. The zero value is empty; Top on an empty stack
// returns the Login entry, the place every flow starts.
type Stack struct {
	entries []Entry
}

func (s *Stack) Push(e Entry) {
	s.entries = append(s.entries, e)
}

// Pop removes the top screen. Popping the last screen leaves the stack empty.
func (s *Stack) Pop() {
	if len(s.entries) > 0 {
		s.entries = s.entries[:len(s.entries)-1]
	}
}

// Reset throws the history away and starts over at the given entry, used for
// the unauthenticated redirect to login.
func (s *Stack) Reset(e Entry) {
	s.entries = s.entries[:0]
	s.entries = append(s.entries, e)
}

func (s *Stack) Top() Entry {
	if len(s.entries) == 0 {
		return Entry{Screen: Login}
	}
	return s.entries[len(s.entries)-1]
}

func (s *Stack) Len() int {
	return len(s.entries)
}
