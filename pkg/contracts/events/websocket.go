// Package events defines the wire contract for messages pushed to
// websocket clients. Payload structs here mirror what the frontend
// decodes; changing a field changes the client contract.
package events

import (
	"time"
)

// Event types pushed to clients.
const (
	TypeConnection      = "connection"
	TypeIngestStarted   = "ingest:started"
	TypeIngestProgress  = "ingest:progress"
	TypeIngestCompleted = "ingest:completed"
)

// Message is the envelope every pushed event travels in.
type Message struct {
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Connected greets a client right after registration.
type Connected struct {
	Status   string `json:"status"`
	ClientID string `json:"client_id"`
}

// IngestStarted announces that a slip-audit upload was accepted for
// processing.
type IngestStarted struct {
	ChapterID int64  `json:"chapter_id"`
	Chapter   string `json:"chapter"`
	Period    string `json:"period"`
}

// IngestProgress reports extraction counts before matrices are built.
type IngestProgress struct {
	ChapterID int64  `json:"chapter_id"`
	Period    string `json:"period"`
	Referrals int    `json:"referrals"`
	OneToOnes int    `json:"one_to_ones"`
	TYFCBs    int    `json:"tyfcbs"`
	Warnings  int    `json:"warnings"`
}

// IngestCompleted closes the ingest event sequence. Success false means
// the file was rejected or storage failed; row-level warnings do not
// clear the flag.
type IngestCompleted struct {
	ChapterID int64  `json:"chapter_id"`
	Period    string `json:"period"`
	Success   bool   `json:"success"`
}
