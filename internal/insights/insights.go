// Package insights derives actionable alerts from already-loaded
// clients, tasks and communications. It is pure: callers assemble a
// Snapshot from storage and get back a prioritized list of insights.
package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/danivilar/atelier/internal/domain"
)

type Kind string

const (
	KindOverdue  Kind = "overdue"
	KindDeadline Kind = "deadline"
	KindStalled  Kind = "stalled"
	KindFollowUp Kind = "followup"
	KindWorkload Kind = "workload"
	KindQuality  Kind = "quality"
)

type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	default:
		return "low"
	}
}

// Thresholds tune when the rules fire. Zero values fall back to the
// defaults inside Generate.
type Thresholds struct {
	DaysWithoutActivity int // stalled-client rule
	DaysBeforeDeadline  int // due-soon window
	DaysWithoutContact  int // silent-client rule
	MaxTasksPerWeek     int // workload ceiling
}

// DefaultThresholds are the rates the rules were tuned against.
var DefaultThresholds = Thresholds{
	DaysWithoutActivity: 14,
	DaysBeforeDeadline:  3,
	DaysWithoutContact:  10,
	MaxTasksPerWeek:     15,
}

// dueSoonLimit caps how many individual deadline insights one run emits.
const dueSoonLimit = 5

// Insight is one actionable finding.
type Insight struct {
	Kind     Kind
	Priority Priority
	Title    string
	Detail   string
	Action   string
	ClientID string // empty for portfolio-wide insights
	TaskID   string // set for single-task insights
}

// Snapshot is everything the rules need, keyed and pre-loaded by the
// caller.
type Snapshot struct {
	Now time.Time

	Clients        []*domain.Client // active clients only
	Tasks          []*domain.Task   // all tasks, any status
	Communications []*domain.Communication
}

// Generate runs every rule over the snapshot and returns the findings
// ordered by priority, highest first.
func Generate(in Snapshot, th Thresholds) []Insight {
	th = withDefaults(th)

	var out []Insight
	out = append(out, overdueByClient(in)...)
	out = append(out, dueSoon(in, th)...)
	out = append(out, stalledClients(in, th)...)
	out = append(out, silentClients(in, th)...)
	out = append(out, pendingFollowUps(in)...)
	out = append(out, weeklyWorkload(in, th)...)
	out = append(out, qualityGaps(in)...)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

func withDefaults(th Thresholds) Thresholds {
	if th.DaysWithoutActivity <= 0 {
		th.DaysWithoutActivity = DefaultThresholds.DaysWithoutActivity
	}
	if th.DaysBeforeDeadline <= 0 {
		th.DaysBeforeDeadline = DefaultThresholds.DaysBeforeDeadline
	}
	if th.DaysWithoutContact <= 0 {
		th.DaysWithoutContact = DefaultThresholds.DaysWithoutContact
	}
	if th.MaxTasksPerWeek <= 0 {
		th.MaxTasksPerWeek = DefaultThresholds.MaxTasksPerWeek
	}
	return th
}

func clientName(in Snapshot, id string) string {
	for _, c := range in.Clients {
		if c.ID == id {
			return c.Name
		}
	}
	return "cliente"
}

// overdueByClient groups overdue open tasks per client into one
// high-priority insight each.
func overdueByClient(in Snapshot) []Insight {
	byClient := make(map[string][]*domain.Task)
	for _, t := range in.Tasks {
		if t.Status == domain.TaskCompleted || t.DueDate == nil {
			continue
		}
		if t.DueDate.Before(in.Now) {
			byClient[t.ClientID] = append(byClient[t.ClientID], t)
		}
	}

	ids := make([]string, 0, len(byClient))
	for id := range byClient {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []Insight
	for _, id := range ids {
		tasks := byClient[id]
		oldest := tasks[0]
		for _, t := range tasks[1:] {
			if t.DueDate.Before(*oldest.DueDate) {
				oldest = t
			}
		}
		daysOver := int(in.Now.Sub(*oldest.DueDate).Hours() / 24)
		out = append(out, Insight{
			Kind:     KindOverdue,
			Priority: PriorityHigh,
			Title:    fmt.Sprintf("%d tareas vencidas con %s", len(tasks), clientName(in, id)),
			Detail:   fmt.Sprintf("La más antigua, %q, venció hace %d días.", oldest.Title, daysOver),
			Action:   "Revisar las tareas vencidas y actualizar fechas o cerrarlas.",
			ClientID: id,
		})
	}
	return out
}

// dueSoon flags open tasks due within the deadline window, soonest
// first, capped at dueSoonLimit.
func dueSoon(in Snapshot, th Thresholds) []Insight {
	windowEnd := in.Now.AddDate(0, 0, th.DaysBeforeDeadline)

	var upcoming []*domain.Task
	for _, t := range in.Tasks {
		if t.Status == domain.TaskCompleted || t.DueDate == nil {
			continue
		}
		if !t.DueDate.Before(in.Now) && !t.DueDate.After(windowEnd) {
			upcoming = append(upcoming, t)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(*upcoming[j].DueDate)
	})
	if len(upcoming) > dueSoonLimit {
		upcoming = upcoming[:dueSoonLimit]
	}

	var out []Insight
	for _, t := range upcoming {
		daysUntil := int(t.DueDate.Sub(in.Now).Hours() / 24)
		when := "hoy"
		if daysUntil > 0 {
			when = fmt.Sprintf("en %d días", daysUntil)
		}
		priority := PriorityMedium
		if daysUntil <= 1 {
			priority = PriorityHigh
		}
		out = append(out, Insight{
			Kind:     KindDeadline,
			Priority: priority,
			Title:    fmt.Sprintf("%q vence %s", t.Title, when),
			Detail:   fmt.Sprintf("Tarea de %s con fecha %s.", clientName(in, t.ClientID), t.DueDate.Format("02/01")),
			Action:   "Completar esta tarea a tiempo.",
			ClientID: t.ClientID,
			TaskID:   t.ID,
		})
	}
	return out
}

// stalledClients flags active clients whose most recent task update is
// older than the activity threshold.
func stalledClients(in Snapshot, th Thresholds) []Insight {
	cutoff := in.Now.AddDate(0, 0, -th.DaysWithoutActivity)

	var out []Insight
	for _, c := range in.Clients {
		var last *time.Time
		for _, t := range in.Tasks {
			if t.ClientID != c.ID {
				continue
			}
			if last == nil || t.UpdatedAt.After(*last) {
				u := t.UpdatedAt
				last = &u
			}
		}
		if last == nil || !last.Before(cutoff) {
			continue
		}
		days := int(in.Now.Sub(*last).Hours() / 24)
		out = append(out, Insight{
			Kind:     KindStalled,
			Priority: PriorityMedium,
			Title:    fmt.Sprintf("%s sin actividad", c.Name),
			Detail:   fmt.Sprintf("Sin movimiento en tareas desde hace %d días.", days),
			Action:   "Revisar tareas pendientes o contactar al cliente.",
			ClientID: c.ID,
		})
	}
	return out
}

// silentClients flags active clients with no logged communication
// inside the contact threshold.
func silentClients(in Snapshot, th Thresholds) []Insight {
	cutoff := in.Now.AddDate(0, 0, -th.DaysWithoutContact)

	lastContact := make(map[string]time.Time)
	for _, c := range in.Communications {
		if prev, ok := lastContact[c.ClientID]; !ok || c.OccurredAt.After(prev) {
			lastContact[c.ClientID] = c.OccurredAt
		}
	}

	var out []Insight
	for _, c := range in.Clients {
		last, ok := lastContact[c.ID]
		if ok && !last.Before(cutoff) {
			continue
		}
		detail := "Nunca se registró una comunicación."
		if ok {
			detail = fmt.Sprintf("Último contacto hace %d días.", int(in.Now.Sub(last).Hours()/24))
		}
		out = append(out, Insight{
			Kind:     KindStalled,
			Priority: PriorityMedium,
			Title:    fmt.Sprintf("%s sin contacto reciente", c.Name),
			Detail:   detail,
			Action:   "Enviar un correo o agendar una llamada.",
			ClientID: c.ID,
		})
	}
	return out
}

// pendingFollowUps flags communications whose follow-up is overdue or
// due within two days.
func pendingFollowUps(in Snapshot) []Insight {
	horizon := in.Now.AddDate(0, 0, 2)

	var out []Insight
	for _, c := range in.Communications {
		if !c.RequiresFollowUp || c.FollowUpDate == nil || c.FollowUpDate.After(horizon) {
			continue
		}
		priority := PriorityMedium
		if c.FollowUpDate.Before(in.Now) {
			priority = PriorityHigh
		}
		summary := c.Summary
		if len([]rune(summary)) > 60 {
			summary = string([]rune(summary)[:60]) + "…"
		}
		out = append(out, Insight{
			Kind:     KindFollowUp,
			Priority: priority,
			Title:    fmt.Sprintf("Seguimiento pendiente: %s", clientName(in, c.ClientID)),
			Detail:   fmt.Sprintf("Comunicación del %s: %s", c.OccurredAt.Format("02/01"), summary),
			Action:   "Contactar al cliente para el seguimiento.",
			ClientID: c.ClientID,
		})
	}
	return out
}

// weeklyWorkload warns when open tasks due this week pass 70% of the
// weekly ceiling, and escalates past the ceiling itself.
func weeklyWorkload(in Snapshot, th Thresholds) []Insight {
	weekStart := startOfWeek(in.Now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	count := 0
	for _, t := range in.Tasks {
		if t.Status == domain.TaskCompleted || t.DueDate == nil {
			continue
		}
		if !t.DueDate.Before(weekStart) && t.DueDate.Before(weekEnd) {
			count++
		}
	}

	if float64(count) <= float64(th.MaxTasksPerWeek)*0.7 {
		return nil
	}
	priority := PriorityLow
	if count > th.MaxTasksPerWeek {
		priority = PriorityMedium
	}
	return []Insight{{
		Kind:     KindWorkload,
		Priority: priority,
		Title:    fmt.Sprintf("Carga de trabajo: %d tareas esta semana", count),
		Detail:   fmt.Sprintf("Hay %d tareas abiertas con fecha esta semana.", count),
		Action:   "Priorizar o reprogramar algunas tareas.",
	}}
}

// qualityGaps flags pending tasks missing an estimate or a due date,
// one aggregate insight per gap.
func qualityGaps(in Snapshot) []Insight {
	var noEstimate, noDate []*domain.Task
	for _, t := range in.Tasks {
		if t.Status != domain.TaskPending {
			continue
		}
		if t.EstimateMin == 0 {
			noEstimate = append(noEstimate, t)
		}
		if t.DueDate == nil {
			noDate = append(noDate, t)
		}
	}

	var out []Insight
	if len(noEstimate) > 0 {
		out = append(out, Insight{
			Kind:     KindQuality,
			Priority: PriorityMedium,
			Title:    fmt.Sprintf("%d tareas sin tiempo estimado", len(noEstimate)),
			Detail:   fmt.Sprintf("Sin estimación no se puede medir rentabilidad. Ej: %q.", noEstimate[0].Title),
			Action:   "Añadir un estimado a estas tareas.",
		})
	}
	if len(noDate) > 0 {
		out = append(out, Insight{
			Kind:     KindQuality,
			Priority: PriorityMedium,
			Title:    fmt.Sprintf("%d tareas sin fecha límite", len(noDate)),
			Detail:   fmt.Sprintf("Ej: %q.", noDate[0].Title),
			Action:   "Agregar fechas límite para controlar el calendario.",
		})
	}
	return out
}

// startOfWeek returns the Monday 00:00 UTC of now's ISO week.
func startOfWeek(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
