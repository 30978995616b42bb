package domain

type ContractType string

const (
	ContractMonthly ContractType = "monthly"
	ContractOneTime ContractType = "one_time"
)

type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientPaused   ClientStatus = "paused"
	ClientFinished ClientStatus = "finished"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	PriorityUrgent TaskPriority = "urgent"
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

type LeadStatus string

const (
	LeadNew         LeadStatus = "new"
	LeadContacted   LeadStatus = "contacted"
	LeadDiscovery   LeadStatus = "discovery"
	LeadProposal    LeadStatus = "proposal"
	LeadNegotiation LeadStatus = "negotiation"
	LeadWon         LeadStatus = "won"
	LeadLost        LeadStatus = "lost"
)

type LeadSource string

const (
	SourceWebsite      LeadSource = "website"
	SourceReferral     LeadSource = "referral"
	SourceLinkedIn     LeadSource = "linkedin"
	SourceConference   LeadSource = "conference"
	SourceColdOutreach LeadSource = "cold_outreach"
	SourceOther        LeadSource = "other"
)

type BillingCycle string

const (
	CycleMonthly   BillingCycle = "monthly"
	CycleBimonthly BillingCycle = "bimonthly"
	CycleQuarterly BillingCycle = "quarterly"
	CycleAnnual    BillingCycle = "annual"
	CycleOneTime   BillingCycle = "one_time"
)

type BillingEventType string

const (
	EventInvoiceSent     BillingEventType = "invoice_sent"
	EventPaymentReceived BillingEventType = "payment_received"
	EventReminderSent    BillingEventType = "reminder_sent"
	EventNote            BillingEventType = "note"
)

type IncomeType string

const (
	IncomeRecurring IncomeType = "recurring"
	IncomeOneTime   IncomeType = "one_time"
)

type DigestStatus string

const (
	DigestDraft    DigestStatus = "draft"
	DigestReviewed DigestStatus = "reviewed"
	DigestSent     DigestStatus = "sent"
)

type ProposalStatus string

const (
	ProposalDraft    ProposalStatus = "draft"
	ProposalSent     ProposalStatus = "sent"
	ProposalAccepted ProposalStatus = "accepted"
	ProposalRejected ProposalStatus = "rejected"
	ProposalExpired  ProposalStatus = "expired"
)

type ServiceType string

const (
	ServiceSEOSprint          ServiceType = "seo_sprint"
	ServiceMigration          ServiceType = "migration"
	ServiceMarketStudy        ServiceType = "market_study"
	ServiceConsultingRetainer ServiceType = "consulting_retainer"
	ServiceBrandAudit         ServiceType = "brand_audit"
	ServiceCustom             ServiceType = "custom"
)

type RiskLevel string

const (
	RiskHealthy RiskLevel = "healthy"
	RiskWarning RiskLevel = "warning"
	RiskAtRisk  RiskLevel = "at_risk"
)

// Label returns the display label for a task status. Unrecognized values
// coming from storage degrade to a single fallback branch instead of
// rendering as an empty string.
func (s TaskStatus) Label() string {
	switch s {
	case TaskPending:
		return "Pending"
	case TaskInProgress:
		return "In Progress"
	case TaskCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

func (p TaskPriority) Label() string {
	switch p {
	case PriorityUrgent:
		return "Urgent"
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return "Unknown"
	}
}

func (s LeadStatus) Label() string {
	switch s {
	case LeadNew:
		return "New"
	case LeadContacted:
		return "Contacted"
	case LeadDiscovery:
		return "Discovery"
	case LeadProposal:
		return "Proposal"
	case LeadNegotiation:
		return "Negotiation"
	case LeadWon:
		return "Won"
	case LeadLost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// BoardColumns is the canonical kanban column order for task statuses.
var BoardColumns = []TaskStatus{TaskPending, TaskInProgress, TaskCompleted}

// PipelineStages is the canonical lead pipeline order.
var PipelineStages = []LeadStatus{
	LeadNew, LeadContacted, LeadDiscovery, LeadProposal,
	LeadNegotiation, LeadWon, LeadLost,
}
