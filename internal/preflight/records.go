package preflight

import (
	"fmt"
	"strings"

	"github.com/Aman-CERP/hanzi/internal/lock"
	"github.com/Aman-CERP/hanzi/internal/model"
	"github.com/Aman-CERP/hanzi/internal/store"
)

// Records is the part of a loaded store the integrity checks read.
type Records interface {
	LastLoad() store.LoadReport
	Characters() []model.Character
	Radical(key string) (model.Radical, bool)
}

// maxListed caps the keys named in a result's details.
const maxListed = 10

// CheckLock reports whether another writer currently holds the store lock.
func (c *Checker) CheckLock(root string) CheckResult {
	result := CheckResult{
		Name: "store_lock",
	}

	l := lock.New(root)
	if err := l.TryLock(); err != nil {
		result.Status = StatusWarn
		result.Message = "another writer holds " + l.Path()
		return result
	}
	_ = l.Unlock()

	result.Status = StatusPass
	result.Message = "free"
	return result
}

// CheckUnreadableRecords reports record files skipped by the last load.
func (c *Checker) CheckUnreadableRecords(st Records) CheckResult {
	result := CheckResult{
		Name: "record_files",
	}

	report := st.LastLoad()
	result.Message = fmt.Sprintf("%d radicals, %d characters", report.Radicals, report.Characters)
	if report.Skipped > 0 {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("%d file(s) could not be read", report.Skipped)
		result.Details = "See `hanzi logs --pattern record_` after a --debug run"
		return result
	}

	result.Status = StatusPass
	return result
}

// CheckDanglingRadicals reports characters that reference radicals which
// are not stored. Such references are legal but usually a typo.
func (c *Checker) CheckDanglingRadicals(st Records) CheckResult {
	result := CheckResult{
		Name: "radical_references",
	}

	var dangling []string
	seen := make(map[string]bool)
	for _, ch := range st.Characters() {
		for _, r := range ch.Radicals {
			if seen[r] {
				continue
			}
			seen[r] = true
			if _, ok := st.Radical(r); !ok {
				dangling = append(dangling, r)
			}
		}
	}

	if len(dangling) == 0 {
		result.Status = StatusPass
		result.Message = "all radicals stored"
		return result
	}

	result.Status = StatusWarn
	result.Message = fmt.Sprintf("%d radical(s) referenced but not stored", len(dangling))
	listed := dangling
	if len(listed) > maxListed {
		listed = listed[:maxListed]
	}
	result.Details = "Missing: " + strings.Join(listed, " ")
	return result
}
