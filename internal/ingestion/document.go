package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Document is the text extracted from one source, with enough metadata to log and dedupe it
type Document struct {
	Source      string    `json:"source"` // file name or URL
	Format      string    `json:"format"` // pdf, docx, txt, html, md, url
	Text        string    `json:"text"`
	Hash        string    `json:"hash"` // SHA256 of the raw input
	Bytes       int       `json:"bytes"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// NewDocument builds a Document over already-extracted text
func NewDocument(source, format string, raw []byte, text string) *Document {
	return &Document{
		Source:      source,
		Format:      format,
		Text:        text,
		Hash:        computeHash(raw),
		Bytes:       len(raw),
		ExtractedAt: time.Now().UTC(),
	}
}

func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
