// Package finding decodes the output of the secret scanner (trufflehog --json).
// The scanner writes one JSON object per detected secret. The output may also be
// an empty array when nothing was found, or a JSON array of records.
// Only the git metadata of each record is decoded; the raw secret is never read.
package finding

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/afero"
)

// Finding is a single secret detected by the scanner.
type Finding struct {
	RepositoryURL string
	File          string
	// Line is 1-based.
	Line     int
	Commit   string
	Detector string
	Verified bool
}

// ParseError is returned when non-empty scanner output isn't valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decode the scanner output as JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type record struct {
	SourceMetadata *sourceMetadata `json:"SourceMetadata"`
	DetectorName   string          `json:"DetectorName"`
	Verified       bool            `json:"Verified"`
}

type sourceMetadata struct {
	Data *sourceData `json:"Data"`
}

type sourceData struct {
	Git *gitMetadata `json:"Git"`
}

type gitMetadata struct {
	Repository string          `json:"repository"`
	Commit     string          `json:"commit"`
	File       string          `json:"file"`
	Line       json.RawMessage `json:"line"`
}

// line returns 0 unless the line is a positive JSON integer.
func (g *gitMetadata) line() int {
	n, err := strconv.Atoi(string(bytes.TrimSpace(g.Line)))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

func (r *record) finding() *Finding {
	if r == nil || r.SourceMetadata == nil || r.SourceMetadata.Data == nil {
		return nil
	}
	git := r.SourceMetadata.Data.Git
	if git == nil || git.File == "" {
		return nil
	}
	line := git.line()
	if line == 0 {
		return nil
	}
	return &Finding{
		RepositoryURL: git.Repository,
		File:          git.File,
		Line:          line,
		Commit:        git.Commit,
		Detector:      r.DetectorName,
		Verified:      r.Verified,
	}
}

// Read reads the scanner output file.
// A missing file means the scanner produced nothing, so empty content is returned.
func Read(fs afero.Fs, path string) ([]byte, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read the scanner output file: %w", err)
	}
	return b, nil
}

// Parse returns the finding of the first record in the scanner output.
// It returns nil without error if the output is empty, is an empty array,
// or the first record has no file or no positive line.
// Malformed JSON is returned as *ParseError.
func Parse(raw []byte) (*Finding, error) {
	records, err := decodeAll(raw)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil //nolint:nilnil
	}
	return records[0].finding(), nil
}

// ParseAll returns every actionable finding in the scanner output in input order.
// The output may be a single object, an array of objects, or a stream of objects.
func ParseAll(raw []byte) ([]*Finding, error) {
	records, err := decodeAll(raw)
	if err != nil {
		return nil, err
	}
	var findings []*Finding
	for _, rec := range records {
		if f := rec.finding(); f != nil {
			findings = append(findings, f)
		}
	}
	return findings, nil
}

// decodeAll decodes every JSON object in the output. Other JSON values carry no record.
func decodeAll(raw []byte) ([]*record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	var records []*record
	for {
		var msg json.RawMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			return nil, &ParseError{Err: err}
		}
		arr, err := decodeValue(msg)
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		records = append(records, arr...)
	}
}

func decodeValue(msg json.RawMessage) ([]*record, error) {
	if msg[0] != '[' {
		rec, err := decodeRecord(msg)
		if err != nil || rec == nil {
			return nil, err
		}
		return []*record{rec}, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(msg, &elems); err != nil {
		return nil, err //nolint:wrapcheck
	}
	records := make([]*record, 0, len(elems))
	for _, elem := range elems {
		rec, err := decodeRecord(elem)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

func decodeRecord(msg json.RawMessage) (*record, error) {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 || msg[0] != '{' {
		// null, scalars, and nested arrays carry no record
		return nil, nil //nolint:nilnil
	}
	rec := &record{}
	if err := json.Unmarshal(msg, rec); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return rec, nil
}
