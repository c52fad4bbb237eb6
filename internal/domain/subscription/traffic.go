package subscription

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var digitRun = regexp.MustCompile(`\d+`)

// Traffic is the accounting carried by the subscription-userinfo header.
type Traffic struct {
	Upload   int64 `json:"upload"`
	Download int64 `json:"download"`
	Total    int64 `json:"total"`
}

// UserInfo is a parsed subscription-userinfo header. HasExpiry is false when
// the header carries no fourth number.
type UserInfo struct {
	Traffic   Traffic
	ExpireAt  int64
	HasExpiry bool
}

// Expiry classifies the expiry epoch against now, or reports it unknown when
// the header had none.
func (u *UserInfo) Expiry(now time.Time) Expiry {
	if !u.HasExpiry {
		return Expiry{Kind: ExpiryUnknown}
	}
	return NewExpiry(u.ExpireAt, now)
}

// ParseUserInfo reads the decimal runs of the header in order: upload,
// download, total and an optional expiry epoch. Key names are ignored.
func ParseUserInfo(header string) (*UserInfo, error) {
	runs := digitRun.FindAllString(header, -1)
	if len(runs) < 3 {
		return nil, ErrNoTrafficInfo
	}

	nums := make([]int64, 0, 4)
	for _, run := range runs[:min(len(runs), 4)] {
		n, err := strconv.ParseInt(run, 10, 64)
		if err != nil {
			return nil, ErrNoTrafficInfo
		}
		nums = append(nums, n)
	}

	info := &UserInfo{Traffic: Traffic{Upload: nums[0], Download: nums[1], Total: nums[2]}}
	if len(nums) == 4 {
		info.ExpireAt = nums[3]
		info.HasExpiry = true
	}
	return info, nil
}

func (t Traffic) Used() int64 {
	return t.Upload + t.Download
}

// Remaining is not clamped; FormatSize renders negatives as zero.
func (t Traffic) Remaining() int64 {
	return t.Total - t.Download - t.Upload
}

// UsagePercent is used/total*100 rounded to two decimals, 0 for a zero total.
func (t Traffic) UsagePercent() float64 {
	if t.Total == 0 {
		return 0
	}
	return math.Round(float64(t.Used())/float64(t.Total)*100*100) / 100
}

// FormatPercent renders the usage the way the chat report always has:
// "25.0", "33.33", and a bare "0" for a zero total.
func (t Traffic) FormatPercent() string {
	if t.Total == 0 {
		return "0"
	}
	s := strconv.FormatFloat(t.UsagePercent(), 'f', -1, 64)
	if strings.ContainsRune(s, '.') {
		return s
	}
	return s + ".0"
}
