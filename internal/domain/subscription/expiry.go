package subscription

import (
	"fmt"
	"time"
)

// reportZone is the fixed UTC+8 offset expiry dates are shown in.
var reportZone = time.FixedZone("UTC+8", 8*60*60)

type ExpiryKind string

const (
	ExpiryUnknown ExpiryKind = "unknown"
	ExpiryFuture  ExpiryKind = "expires_at"
	ExpiryPast    ExpiryKind = "expired_at"
)

// Expiry is one of Unknown, ExpiresAt(date, remaining) or ExpiredAt(date).
type Expiry struct {
	Kind      ExpiryKind    `json:"kind"`
	At        time.Time     `json:"at,omitzero"`
	Remaining time.Duration `json:"remaining,omitempty"`
}

// NewExpiry classifies an expiry epoch against now.
func NewExpiry(epoch int64, now time.Time) Expiry {
	at := time.Unix(epoch, 0)
	if now.Unix() <= epoch {
		return Expiry{
			Kind:      ExpiryFuture,
			At:        at,
			Remaining: time.Duration(epoch-now.Unix()) * time.Second,
		}
	}
	return Expiry{Kind: ExpiryPast, At: at}
}

// Date renders the expiry day in UTC+8.
func (e Expiry) Date() string {
	return e.At.In(reportZone).Format(time.DateOnly)
}

// Line is the closing line of the report.
func (e Expiry) Line() string {
	switch e.Kind {
	case ExpiryFuture:
		return fmt.Sprintf("此订阅将于`%s`过期，剩余`%s`", e.Date(), FormatRemaining(e.Remaining))
	case ExpiryPast:
		return fmt.Sprintf("此订阅已于`%s`过期！", e.Date())
	default:
		return "到期时间：`" + MsgUnknown + "`"
	}
}

// FormatRemaining renders whole days and leftover hours, each zero padded to
// two digits: 90000s becomes "01天01小时".
func FormatRemaining(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	days := secs / 86400
	hours := secs / 3600 % 24
	return fmt.Sprintf("%02d天%02d小时", days, hours)
}
