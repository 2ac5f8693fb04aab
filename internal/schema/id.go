package schema

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// ID prefixes per record kind.
const (
	PrefixUser          = "usr_"
	PrefixCandidateUser = "usr_candidate_"
	PrefixProject       = "proj_"
	PrefixQuestion      = "ques_"
)

// SeedAdminID is the fixed id of the bootstrap admin account.
const SeedAdminID = "usr_admin_01"

const randomIDSpace = 1000

// GenerateID builds a record id of the form
// <prefix><millisecond-timestamp><3-digit-random>.
func GenerateID(prefix string) string {
	return fmt.Sprintf("%s%d%03d", prefix, time.Now().UnixMilli(), rand.IntN(randomIDSpace))
}

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// NowISO returns the current UTC time in ISO-8601 with milliseconds, the
// format used for envelope lastUpdated and account timestamps.
func NowISO() string {
	return time.Now().UTC().Format(isoMillis)
}

// FormatDateTime returns the current local time in the record createdAt
// format, e.g. "2025/06/12 23:17:34".
func FormatDateTime() string {
	return time.Now().Format("2006/01/02 15:04:05")
}

// BackupTimestamp returns NowISO with ':' and '.' replaced by '-', safe for
// use in backup file names.
func BackupTimestamp() string {
	return strings.NewReplacer(":", "-", ".", "-").Replace(NowISO())
}
