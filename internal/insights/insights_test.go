package insights

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danivilar/atelier/internal/domain"
)

var testNow = time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC) // a Wednesday

func client(id, name string) *domain.Client {
	return &domain.Client{ID: id, Name: name, Status: domain.ClientActive}
}

func task(clientID, title string, status domain.TaskStatus, due *time.Time) *domain.Task {
	return &domain.Task{
		ID:        "task-" + title,
		ClientID:  clientID,
		Title:     title,
		Status:    status,
		DueDate:   due,
		UpdatedAt: testNow,
	}
}

func daysFromNow(d int) *time.Time {
	t := testNow.AddDate(0, 0, d)
	return &t
}

func ofKind(list []Insight, k Kind) []Insight {
	var out []Insight
	for _, i := range list {
		if i.Kind == k {
			out = append(out, i)
		}
	}
	return out
}

func TestGenerate_OverdueGroupedByClient(t *testing.T) {
	in := Snapshot{
		Now:     testNow,
		Clients: []*domain.Client{client("c1", "Acme")},
		Tasks: []*domain.Task{
			task("c1", "Audit", domain.TaskPending, daysFromNow(-10)),
			task("c1", "Wireframes", domain.TaskInProgress, daysFromNow(-2)),
			task("c1", "Launch", domain.TaskCompleted, daysFromNow(-5)),
		},
	}

	got := ofKind(Generate(in, Thresholds{}), KindOverdue)
	require.Len(t, got, 1, "one aggregate insight per client")
	assert.Equal(t, PriorityHigh, got[0].Priority)
	assert.Contains(t, got[0].Title, "2 tareas vencidas")
	assert.Contains(t, got[0].Title, "Acme")
	assert.Contains(t, got[0].Detail, "Audit", "oldest overdue task is named")
	assert.Equal(t, "c1", got[0].ClientID)
}

func TestGenerate_DueSoonWindowAndEscalation(t *testing.T) {
	in := Snapshot{
		Now:     testNow,
		Clients: []*domain.Client{client("c1", "Acme")},
		Tasks: []*domain.Task{
			task("c1", "Today", domain.TaskPending, daysFromNow(0)),
			task("c1", "Next week", domain.TaskPending, daysFromNow(9)),
		},
	}

	got := ofKind(Generate(in, Thresholds{}), KindDeadline)
	require.Len(t, got, 1, "only tasks inside the window fire")
	assert.Equal(t, PriorityHigh, got[0].Priority, "due today escalates")
	assert.Contains(t, got[0].Title, "vence hoy")
	assert.Equal(t, "task-Today", got[0].TaskID)
}

func TestGenerate_DueSoonCapped(t *testing.T) {
	in := Snapshot{
		Now:     testNow,
		Clients: []*domain.Client{client("c1", "Acme")},
	}
	for i := 0; i < 8; i++ {
		in.Tasks = append(in.Tasks,
			task("c1", fmt.Sprintf("T%d", i), domain.TaskPending, daysFromNow(2)))
	}

	got := ofKind(Generate(in, Thresholds{}), KindDeadline)
	assert.Len(t, got, dueSoonLimit)
}

func TestGenerate_StalledClient(t *testing.T) {
	stale := task("c1", "Old work", domain.TaskCompleted, nil)
	stale.UpdatedAt = testNow.AddDate(0, 0, -20)

	in := Snapshot{
		Now:     testNow,
		Clients: []*domain.Client{client("c1", "Acme"), client("c2", "Globex")},
		Tasks: []*domain.Task{
			stale,
			task("c2", "Fresh", domain.TaskInProgress, nil),
		},
	}

	got := ofKind(Generate(in, Thresholds{}), KindStalled)
	names := make([]string, 0, len(got))
	for _, i := range got {
		names = append(names, i.Title)
	}
	assert.Contains(t, fmt.Sprint(names), "Acme sin actividad")
	assert.NotContains(t, fmt.Sprint(names), "Globex sin actividad")
}

func TestGenerate_SilentClientNeverContacted(t *testing.T) {
	in := Snapshot{
		Now:     testNow,
		Clients: []*domain.Client{client("c1", "Acme")},
		Communications: []*domain.Communication{
			{ClientID: "c2", OccurredAt: testNow},
		},
	}

	got := ofKind(Generate(in, Thresholds{}), KindStalled)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Title, "sin contacto reciente")
	assert.Contains(t, got[0].Detail, "Nunca")
}

func TestGenerate_FollowUpOverdueIsHigh(t *testing.T) {
	in := Snapshot{
		Now:     testNow,
		Clients: []*domain.Client{client("c1", "Acme")},
		Communications: []*domain.Communication{
			{
				ClientID:         "c1",
				Summary:          "Presupuesto enviado",
				OccurredAt:       testNow.AddDate(0, 0, -5),
				RequiresFollowUp: true,
				FollowUpDate:     daysFromNow(-1),
			},
			{
				ClientID:         "c1",
				Summary:          "Kickoff",
				OccurredAt:       testNow.AddDate(0, 0, -3),
				RequiresFollowUp: true,
				FollowUpDate:     daysFromNow(10),
			},
		},
	}

	got := ofKind(Generate(in, Thresholds{}), KindFollowUp)
	require.Len(t, got, 1, "far-future follow-ups stay quiet")
	assert.Equal(t, PriorityHigh, got[0].Priority)
	assert.Contains(t, got[0].Detail, "Presupuesto enviado")
}

func TestGenerate_WorkloadWarnsAtSeventyPercent(t *testing.T) {
	in := Snapshot{Now: testNow, Clients: []*domain.Client{client("c1", "Acme")}}
	for i := 0; i < 8; i++ {
		in.Tasks = append(in.Tasks,
			task("c1", fmt.Sprintf("W%d", i), domain.TaskInProgress, daysFromNow(1)))
	}

	// Ceiling 10: 8 tasks is past the 70% warning line but under the cap.
	got := ofKind(Generate(in, Thresholds{MaxTasksPerWeek: 10}), KindWorkload)
	require.Len(t, got, 1)
	assert.Equal(t, PriorityLow, got[0].Priority)
	assert.Contains(t, got[0].Title, "8 tareas")

	// 6 tasks stays under the warning line.
	in.Tasks = in.Tasks[:6]
	got = ofKind(Generate(in, Thresholds{MaxTasksPerWeek: 10}), KindWorkload)
	assert.Empty(t, got)
}

func TestGenerate_QualityGaps(t *testing.T) {
	estimated := task("c1", "Sized", domain.TaskPending, daysFromNow(30))
	estimated.EstimateMin = 120

	in := Snapshot{
		Now:     testNow,
		Clients: []*domain.Client{client("c1", "Acme")},
		Tasks: []*domain.Task{
			estimated,
			task("c1", "Unsized", domain.TaskPending, nil),
		},
	}

	got := ofKind(Generate(in, Thresholds{}), KindQuality)
	require.Len(t, got, 2)
	assert.Contains(t, got[0].Title, "sin tiempo estimado")
	assert.Contains(t, got[1].Title, "sin fecha límite")
}

func TestGenerate_OrderedByPriority(t *testing.T) {
	in := Snapshot{
		Now:     testNow,
		Clients: []*domain.Client{client("c1", "Acme")},
		Tasks: []*domain.Task{
			task("c1", "Late", domain.TaskPending, daysFromNow(-3)),
			task("c1", "Unplanned", domain.TaskPending, nil),
		},
	}

	got := Generate(in, Thresholds{})
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Priority, got[i].Priority)
	}
	assert.Equal(t, KindOverdue, got[0].Kind)
}
