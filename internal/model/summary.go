package model

import (
    "database/sql"
    "time"
)

// SummaryRecord mirrors one row of the `summaries` table.  A record is
// written exactly once, after a summarization request has fully
// succeeded, and is never updated or deleted afterwards.  The title is
// nullable because metadata extraction stores whatever the video
// platform returned at write time.
//
// Fields:
//  ID        – primary key identifier (insertion order).
//  Username  – owner of the record; references users.username by value.
//  URL       – the video URL exactly as submitted.
//  Title     – video title captured at write time (nullable).
//  Summary   – the generated summary text.
//  CreatedAt – server-assigned write timestamp.
type SummaryRecord struct {
    ID        uint64         // summaries.id
    Username  string         // summaries.username
    URL       string         // summaries.url
    Title     sql.NullString // summaries.title (nullable)
    Summary   string         // summaries.summary
    CreatedAt time.Time      // summaries.created_at
}
