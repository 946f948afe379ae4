package model

import "time"

// Room is one venue room. Sort defines the stable left-to-right column
// order in grid views; ties keep their original relative order.
type Room struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Sort int    `json:"sort"`
}

// Session is one talk/workshop slot. StartsAt/EndsAt are concrete instants
// in the schedule's display timezone; the loader guarantees StartsAt < EndsAt
// before a Session reaches any consumer.
type Session struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	RoomID      int       `json:"roomId"`
	Speakers    []string  `json:"speakers"`
}

// Speaker is one presenter, referenced from sessions by id.
type Speaker struct {
	ID             string `json:"id"`
	FullName       string `json:"fullName"`
	Bio            string `json:"bio,omitempty"`
	TagLine        string `json:"tagLine,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// Schedule is the raw rooms/sessions/speakers set for a whole conference,
// as produced by the schedule source.
type Schedule struct {
	Rooms    []Room    `json:"rooms"`
	Sessions []Session `json:"sessions"`
	Speakers []Speaker `json:"speakers"`
}
