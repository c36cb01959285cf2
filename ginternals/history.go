package ginternals

import (
	"bufio"
	"bytes"
	"errors"
	"strconv"
	"strings"
	"time"

	"golang.org/x/xerrors"
)

// ErrHistoryInvalid is returned when the history log cannot be parsed
var ErrHistoryInvalid = errors.New("invalid history log")

const historyRecordEnd = "---"

// HistoryRecord represents one entry of the append-only history log.
// A record is appended every time a commit is created.
//
// A record has the following format:
//
// commit {sha}
// parent {sha}
// message {first line of the commit message}
// timestamp {unix_seconds}
// ---
//
// Note:
// - the parent line is omitted for the very first commit
type HistoryRecord struct {
	Time     time.Time
	Message  string
	CommitID Oid
	ParentID Oid
}

// NewHistoryRecord returns a record for the given commit.
// Only the first line of the message is kept
func NewHistoryRecord(commitID, parentID Oid, message string, t time.Time) HistoryRecord {
	summary, _, _ := strings.Cut(strings.TrimLeft(message, "\n"), "\n")
	return HistoryRecord{
		CommitID: commitID,
		ParentID: parentID,
		Message:  strings.TrimRight(summary, "\r"),
		Time:     t,
	}
}

// Bytes returns the record as stored in the history log
func (r HistoryRecord) Bytes() []byte {
	// Quick reminder that the Write* methods on bytes.Buffer never fails,
	// the error returned is always nil
	buf := new(bytes.Buffer)
	buf.WriteString("commit ")
	buf.WriteString(r.CommitID.String())
	buf.WriteByte('\n')
	if !r.ParentID.IsZero() {
		buf.WriteString("parent ")
		buf.WriteString(r.ParentID.String())
		buf.WriteByte('\n')
	}
	buf.WriteString("message ")
	buf.WriteString(r.Message)
	buf.WriteByte('\n')
	buf.WriteString("timestamp ")
	buf.WriteString(strconv.FormatInt(r.Time.Unix(), 10))
	buf.WriteByte('\n')
	buf.WriteString(historyRecordEnd)
	buf.WriteByte('\n')
	return buf.Bytes()
}

// ParseHistory parses the content of a history log, oldest record
// first
func ParseHistory(data []byte) ([]HistoryRecord, error) {
	records := []HistoryRecord{}

	var (
		current    HistoryRecord
		hasCommit  bool
		hasMessage bool
		hasTime    bool
	)
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for i := 1; sc.Scan(); i++ {
		line := sc.Text()
		if line == historyRecordEnd {
			if !hasCommit || !hasMessage || !hasTime {
				return nil, xerrors.Errorf("incomplete record ending line %d: %w", i, ErrHistoryInvalid)
			}
			records = append(records, current)
			current = HistoryRecord{}
			hasCommit, hasMessage, hasTime = false, false, false
			continue
		}

		key, value, found := strings.Cut(line, " ")
		if !found {
			return nil, xerrors.Errorf("unexpected data line %d: %w", i, ErrHistoryInvalid)
		}
		var err error
		switch key {
		case "commit":
			if hasCommit {
				return nil, xerrors.Errorf("duplicate commit line %d: %w", i, ErrHistoryInvalid)
			}
			current.CommitID, err = NewOidFromStr(value)
			if err != nil {
				return nil, xerrors.Errorf("invalid commit id line %d: %w", i, ErrHistoryInvalid)
			}
			hasCommit = true
		case "parent":
			current.ParentID, err = NewOidFromStr(value)
			if err != nil {
				return nil, xerrors.Errorf("invalid parent id line %d: %w", i, ErrHistoryInvalid)
			}
		case "message":
			current.Message = value
			hasMessage = true
		case "timestamp":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, xerrors.Errorf("invalid timestamp line %d: %w", i, ErrHistoryInvalid)
			}
			current.Time = time.Unix(ts, 0).UTC()
			hasTime = true
		default:
			return nil, xerrors.Errorf("unknown key %q line %d: %w", key, i, ErrHistoryInvalid)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, xerrors.Errorf("could not read history: %w", err)
	}
	if hasCommit || hasMessage || hasTime {
		return nil, xerrors.Errorf("last record is truncated: %w", ErrHistoryInvalid)
	}
	return records, nil
}
