// Package subscription inspects proxy subscription links: it parses traffic
// headers, classifies subscription bodies and renders the chat report.
package subscription

import "errors"

var (
	ErrNoTrafficInfo   = errors.New("subscription-userinfo header missing or malformed")
	ErrUnparseableBody = errors.New("subscription body is neither a clash config nor an encoded node list")
	ErrNameUnavailable = errors.New("airport name unavailable")
)

// User-facing texts.
const (
	MsgNoLinks         = "未找到订阅链接"
	MsgParamError      = "参数错误"
	MsgConnectionError = "连接错误"
	MsgUnreachable     = "无法访问"
	MsgNoTraffic       = "无流量信息"
	MsgUnknown         = "未知"
)
