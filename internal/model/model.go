package model

import "time"

type Kind string

const (
	KindNote         Kind = "note"
	KindConversation Kind = "conversation"
)

// ItemRef identifies a sidebar item by value. Equality is kind+id, never
// pointer identity: the same note is represented by distinct transient
// structs across refreshes.
type ItemRef struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id"`
}

func (r ItemRef) IsZero() bool {
	return r.Kind == "" && r.ID == ""
}

type Section string

const (
	SectionPinned Section = "pinned"
	SectionRecent Section = "recent"
)

func (s Section) Valid() bool {
	return s == SectionPinned || s == SectionRecent
}

// Other returns the opposite sidebar section.
func (s Section) Other() Section {
	if s == SectionPinned {
		return SectionRecent
	}
	return SectionPinned
}

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Conversation is a chat transcript kept alongside notes. Body holds the
// rendered markdown transcript; slate does not speak any chat protocol.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SidebarEntry is one row of a sidebar section. Rank orders entries within
// their section lexicographically.
type SidebarEntry struct {
	Ref     ItemRef `json:"ref"`
	Section Section `json:"section"`
	Rank    string  `json:"rank"`
}

type Event struct {
	Seq      int64     `json:"seq"`
	TS       time.Time `json:"ts"`
	Actor    string    `json:"actor"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload,omitempty"`
}

// DisplayTitle falls back to a placeholder for untitled items.
func DisplayTitle(title string) string {
	if title == "" {
		return "(untitled)"
	}
	return title
}
