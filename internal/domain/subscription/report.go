package subscription

import (
	"strings"
)

// Report is the inspection result of one reachable subscription link.
// A nil Traffic renders the "no traffic information" variant.
type Report struct {
	URL         string     `json:"url"`
	AirportName string     `json:"airport_name"`
	Traffic     *Traffic   `json:"traffic,omitempty"`
	Nodes       *NodeStats `json:"nodes,omitempty"`
	Expiry      Expiry     `json:"expiry"`
}

// Render produces the Markdown block posted to the chat.
func (r *Report) Render() string {
	var b strings.Builder
	b.WriteString("订阅链接：`" + r.URL + "`\n")
	b.WriteString("机场名：`" + r.AirportName + "`\n")

	if r.Traffic == nil {
		b.WriteString(MsgNoTraffic)
		return b.String()
	}

	t := r.Traffic
	writeLine(&b, "已用上行", FormatSize(t.Upload))
	writeLine(&b, "已用下行", FormatSize(t.Download))
	writeLine(&b, "剩余", FormatSize(t.Remaining()))
	writeLine(&b, "总共", FormatSize(t.Total))
	writeLine(&b, "使用比例", t.FormatPercent()+"%")
	writeLine(&b, "节点数量", r.Nodes.CountText())
	if r.Nodes != nil {
		if len(r.Nodes.Types) > 0 {
			writeLine(&b, "节点类型", FormatCounts(r.Nodes.Types))
		}
		if len(r.Nodes.Regions) > 0 {
			writeLine(&b, "节点地区", FormatCounts(r.Nodes.Regions))
		}
	}

	b.WriteString("\n")
	b.WriteString(r.Expiry.Line())
	return b.String()
}

func writeLine(b *strings.Builder, label, value string) {
	b.WriteString(label)
	b.WriteString("：`")
	b.WriteString(value)
	b.WriteString("`\n")
}

// Outcome classifies one URL slot of an inspection.
type Outcome string

const (
	OutcomeOK              Outcome = "ok"
	OutcomeNoTraffic       Outcome = "no_traffic"
	OutcomeConnectionError Outcome = "connection_error"
	OutcomeUnreachable     Outcome = "unreachable"
)

// Slot is the result for one extracted URL. Report is set for OutcomeOK and
// OutcomeNoTraffic; StatusCode is set for OutcomeUnreachable.
type Slot struct {
	URL        string  `json:"url"`
	Outcome    Outcome `json:"outcome"`
	Report     *Report `json:"report,omitempty"`
	StatusCode int     `json:"status_code,omitempty"`
	Error      string  `json:"error,omitempty"`
}

func (s Slot) Render() string {
	switch s.Outcome {
	case OutcomeConnectionError:
		return MsgConnectionError
	case OutcomeUnreachable:
		return MsgUnreachable
	default:
		if s.Report == nil {
			return MsgUnreachable
		}
		return s.Report.Render()
	}
}

// RenderSlots concatenates the slots, each followed by a blank line.
func RenderSlots(slots []Slot) string {
	var b strings.Builder
	for _, s := range slots {
		b.WriteString(s.Render())
		b.WriteString("\n\n")
	}
	return b.String()
}
