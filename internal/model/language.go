package model

// Language represents a row in the `languages` table.  The catalog
// is append-only and seeded at startup with a fixed default set;
// end users can only read it to pick a summary output language.
//
// Fields:
//  ID   – numeric identifier of the language (insertion order).
//  Name – unique language name (e.g. English, Spanish, Korean).
type Language struct {
    ID   uint64 // languages.id
    Name string // languages.name
}
