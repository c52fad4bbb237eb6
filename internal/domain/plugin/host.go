package plugin

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("plugin: not found")

// Host operations refused by the chat platform match ErrRejected; the more
// specific refusals below match both.
var (
	ErrRejected       = errors.New("plugin: rejected by chat platform")
	ErrChannelPrivate = errors.New("plugin: channel is private")
	ErrNotParticipant = errors.New("plugin: not a participant")
	ErrWriteForbidden = errors.New("plugin: write forbidden")
)

type MediaKind string

const (
	MediaPhoto MediaKind = "photo"
	MediaVideo MediaKind = "video"
)

// Media is an upload to the invoking chat. Caption is Markdown.
type Media struct {
	Kind     MediaKind
	FileName string
	Data     []byte
	Caption  string
}

// ChatInfo is the full profile of a user or chat as returned by a chat lookup.
type ChatInfo struct {
	ID                  int64
	Type                ChatType
	Title               string
	Username            string
	FirstName           string
	LastName            string
	Bio                 string
	Description         string
	InviteLink          string
	LinkedChatID        int64
	SlowModeDelay       int
	IsForum             bool
	HasProtectedContent bool
	HasPhoto            bool
}

type MemberStatus string

const (
	MemberCreator       MemberStatus = "creator"
	MemberAdministrator MemberStatus = "administrator"
	MemberMember        MemberStatus = "member"
	MemberRestricted    MemberStatus = "restricted"
	MemberLeft          MemberStatus = "left"
	MemberKicked        MemberStatus = "kicked"
)

type ChatMember struct {
	Status              MemberStatus
	User                User
	CanChangeInfo       bool
	CanDeleteMessages   bool
	CanRestrictMembers  bool
	CanInviteUsers      bool
	CanPinMessages      bool
	CanPromoteMembers   bool
	CanManageVideoChats bool
}

// Host performs chat operations on behalf of one command invocation.
// All text is Markdown.
type Host interface {
	// Edit replaces the visible response to the command.
	Edit(ctx context.Context, text string) error
	// Delete removes the command message and any response to it.
	Delete(ctx context.Context) error
	Forward(ctx context.Context, msg *Message, toChatID int64) error
	SendMedia(ctx context.Context, media Media) error
	// GetChat resolves "@username" or a numeric id.
	GetChat(ctx context.Context, ref string) (*ChatInfo, error)
	GetChatMember(ctx context.Context, chatID, userID int64) (*ChatMember, error)
	GetChatMemberCount(ctx context.Context, chatID int64) (int, error)
}

// Store is the plugins' persistent key-value settings store.
// Get returns ErrNotFound for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
