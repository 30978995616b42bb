package domain

import "time"

type CommunicationChannel string

const (
	ChannelEmail    CommunicationChannel = "email"
	ChannelCall     CommunicationChannel = "call"
	ChannelMeeting  CommunicationChannel = "meeting"
	ChannelWhatsApp CommunicationChannel = "whatsapp"
	ChannelSlack    CommunicationChannel = "slack"
	ChannelOther    CommunicationChannel = "other"
)

// Communication is one logged touchpoint with a client.
type Communication struct {
	ID               string
	ClientID         string
	Channel          CommunicationChannel
	Summary          string
	OccurredAt       time.Time
	RequiresFollowUp bool
	FollowUpDate     *time.Time
	CreatedAt        time.Time
}

// FollowUpOverdue reports whether a required follow-up slipped past its date.
func (c *Communication) FollowUpOverdue(now time.Time) bool {
	return c.RequiresFollowUp && c.FollowUpDate != nil && c.FollowUpDate.Before(now)
}
