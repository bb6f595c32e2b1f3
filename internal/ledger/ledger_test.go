package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/evensplit/internal/models"
)

func calculated(t *testing.T, total float64, count int) *Ledger {
	t.Helper()
	l := New()
	require.NoError(t, l.SetParticipantCount(count))
	l.SetTotalAmount(total)
	require.NoError(t, l.Calculate())
	return l
}

func TestNewLedgerIsEmpty(t *testing.T) {
	l := New()
	assert.Zero(t, l.ParticipantCount())
	assert.Zero(t, l.Share())
	assert.Zero(t, l.TotalAmount())
	assert.False(t, l.ResultsReady())
	assert.Empty(t, l.Participants())
	assert.Empty(t, l.Expenses())
	assert.Empty(t, l.Settlements())
}

func TestScenarioTwoPeopleOnePayer(t *testing.T) {
	l := calculated(t, 100, 2)
	_, err := l.AddExpense(0, 100, "")
	require.NoError(t, err)

	assert.InDelta(t, 50, l.Share(), 1e-9)
	ps := l.Participants()
	assert.InDelta(t, 50, ps[0].Balance, 1e-9)
	assert.InDelta(t, -50, ps[1].Balance, 1e-9)
	assert.Equal(t, []models.Transfer{{From: "Person 2", To: "Person 1", Amount: 50}}, l.Settlements())
}

func TestScenarioThreePeopleOnePayer(t *testing.T) {
	l := calculated(t, 90, 3)
	_, err := l.AddExpense(0, 90, "")
	require.NoError(t, err)

	assert.InDelta(t, 30, l.Share(), 1e-9)
	ps := l.Participants()
	assert.InDelta(t, 60, ps[0].Balance, 1e-9)
	assert.InDelta(t, -30, ps[1].Balance, 1e-9)
	assert.InDelta(t, -30, ps[2].Balance, 1e-9)
	assert.Equal(t, []models.Transfer{
		{From: "Person 2", To: "Person 1", Amount: 30},
		{From: "Person 3", To: "Person 1", Amount: 30},
	}, l.Settlements())
}

func TestScenarioEqualPaymentsSettled(t *testing.T) {
	l := calculated(t, 100, 2)
	_, err := l.AddExpense(0, 50, "")
	require.NoError(t, err)
	_, err = l.AddExpense(1, 50, "")
	require.NoError(t, err)

	for _, p := range l.Participants() {
		assert.InDelta(t, 0, p.Balance, 1e-9)
	}
	assert.Empty(t, l.Settlements())
}

func TestScenarioRemoveUnknownExpense(t *testing.T) {
	l := calculated(t, 100, 2)
	_, err := l.AddExpense(0, 100, "")
	require.NoError(t, err)
	before := l.Snapshot()

	l.RemoveExpense(999)

	assert.Equal(t, before, l.Snapshot())
}

func TestScenarioAddExpenseUnknownParticipant(t *testing.T) {
	l := calculated(t, 100, 2)
	before := l.Snapshot()

	for _, id := range []int{2, -1, 100} {
		_, err := l.AddExpense(id, 10, "")
		assert.ErrorIs(t, err, models.ErrInvalidParticipant)
	}
	assert.Equal(t, before, l.Snapshot())
}

func TestAddExpenseInvalidAmount(t *testing.T) {
	l := calculated(t, 100, 2)
	before := l.Snapshot()

	for _, amount := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := l.AddExpense(0, amount, "")
		assert.ErrorIs(t, err, models.ErrInvalidAmount)
	}
	assert.Equal(t, before, l.Snapshot())
}

func TestAddExpenseIDsAndDescriptions(t *testing.T) {
	l := New()
	require.NoError(t, l.SetParticipantCount(2))

	e1, err := l.AddExpense(0, 10, "")
	require.NoError(t, err)
	e2, err := l.AddExpense(1, 20, "Groceries")
	require.NoError(t, err)
	l.RemoveExpense(e2.ID)
	e3, err := l.AddExpense(1, 5, "")
	require.NoError(t, err)

	assert.Equal(t, "Expense 1", e1.Description)
	assert.Equal(t, "Groceries", e2.Description)
	assert.Equal(t, "Expense 2", e3.Description)
	assert.Less(t, e1.ID, e2.ID)
	assert.Less(t, e2.ID, e3.ID, "ids are never reused")
	assert.Equal(t, []models.Expense{e1, e3}, l.Expenses())
}

func TestAddExpenseBeforeCalculateLeavesBalances(t *testing.T) {
	l := New()
	require.NoError(t, l.SetParticipantCount(2))
	_, err := l.AddExpense(0, 40, "")
	require.NoError(t, err)

	for _, p := range l.Participants() {
		assert.Zero(t, p.Paid)
		assert.Zero(t, p.Balance)
	}

	l.SetTotalAmount(40)
	require.NoError(t, l.Calculate())
	assert.InDelta(t, 40, l.Participants()[0].Paid, 1e-9)
}

func TestShareIsFrozenAfterCalculate(t *testing.T) {
	l := calculated(t, 100, 2)
	l.SetTotalAmount(300)
	_, err := l.AddExpense(0, 100, "")
	require.NoError(t, err)

	assert.InDelta(t, 50, l.Share(), 1e-9)
	assert.InDelta(t, 50, l.Participants()[0].Balance, 1e-9)
	assert.InDelta(t, 300, l.TotalAmount(), 1e-9)

	require.NoError(t, l.Calculate())
	assert.InDelta(t, 150, l.Share(), 1e-9)
	assert.InDelta(t, -50, l.Participants()[0].Balance, 1e-9)
}

func TestRemoveExpenseRecomputes(t *testing.T) {
	l := calculated(t, 100, 2)
	e, err := l.AddExpense(0, 100, "")
	require.NoError(t, err)

	l.RemoveExpense(e.ID)

	assert.Empty(t, l.Expenses())
	for _, p := range l.Participants() {
		assert.Zero(t, p.Paid)
		assert.InDelta(t, -50, p.Balance, 1e-9)
	}
}

func TestSetParticipantCount(t *testing.T) {
	l := calculated(t, 100, 2)
	_, err := l.AddExpense(0, 100, "")
	require.NoError(t, err)
	require.NoError(t, l.RenameParticipant(0, "Alice"))

	t.Run("same count is a no-op", func(t *testing.T) {
		require.NoError(t, l.SetParticipantCount(2))
		assert.Len(t, l.Expenses(), 1)
		assert.True(t, l.ResultsReady())
		assert.Equal(t, "Alice", l.Participants()[0].Name)
	})

	t.Run("invalid count leaves state", func(t *testing.T) {
		before := l.Snapshot()
		assert.ErrorIs(t, l.SetParticipantCount(0), models.ErrInvalidCount)
		assert.ErrorIs(t, l.SetParticipantCount(-3), models.ErrInvalidCount)
		assert.Equal(t, before, l.Snapshot())
	})

	t.Run("change clears expenses and results", func(t *testing.T) {
		require.NoError(t, l.SetParticipantCount(3))
		assert.Empty(t, l.Expenses())
		assert.False(t, l.ResultsReady())
		assert.Equal(t, 3, l.ParticipantCount())
		assert.Equal(t, "Person 1", l.Participants()[0].Name)
	})

	t.Run("returning to an earlier count still clears", func(t *testing.T) {
		_, err := l.AddExpense(2, 10, "")
		require.NoError(t, err)
		require.NoError(t, l.SetParticipantCount(2))
		assert.Empty(t, l.Expenses())
		assert.False(t, l.ResultsReady())
	})
}

func TestCalculateValidation(t *testing.T) {
	l := New()
	require.NoError(t, l.SetParticipantCount(2))

	assert.ErrorIs(t, l.Calculate(), models.ErrValidation, "total not set")
	assert.False(t, l.ResultsReady())
	assert.Zero(t, l.Share())

	empty := New()
	empty.SetTotalAmount(50)
	assert.ErrorIs(t, empty.Calculate(), models.ErrValidation, "no participants")
	assert.False(t, empty.ResultsReady())
}

func TestCalculateShare(t *testing.T) {
	l := New()
	require.NoError(t, l.CalculateShare(100, 4))
	assert.Equal(t, 4, l.ParticipantCount())
	assert.InDelta(t, 25, l.Share(), 1e-9)
	assert.True(t, l.ResultsReady())

	before := l.Snapshot()
	assert.ErrorIs(t, l.CalculateShare(0, 4), models.ErrValidation)
	assert.ErrorIs(t, l.CalculateShare(100, 0), models.ErrValidation)
	assert.Equal(t, before, l.Snapshot())
}

func TestRenameParticipant(t *testing.T) {
	l := calculated(t, 100, 2)
	_, err := l.AddExpense(1, 100, "")
	require.NoError(t, err)
	balances := l.Participants()

	require.NoError(t, l.RenameParticipant(1, "  Bob "))
	require.NoError(t, l.RenameParticipant(0, ""))
	assert.ErrorIs(t, l.RenameParticipant(2, "Ghost"), models.ErrInvalidParticipant)

	ps := l.Participants()
	assert.Equal(t, "", ps[0].Name)
	assert.Equal(t, "  Bob ", ps[1].Name)
	assert.Equal(t, balances[1].Balance, ps[1].Balance)
	assert.Equal(t, []models.Transfer{{From: "", To: "  Bob ", Amount: 50}}, l.Settlements())
}

func TestReset(t *testing.T) {
	l := calculated(t, 100, 2)
	_, err := l.AddExpense(0, 100, "")
	require.NoError(t, err)

	l.Reset()

	assert.Equal(t, New().Snapshot(), l.Snapshot())
	require.NoError(t, l.SetParticipantCount(1))
	e, err := l.AddExpense(0, 1, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.ID)
}

func TestViewsReturnCopies(t *testing.T) {
	l := calculated(t, 100, 2)
	_, err := l.AddExpense(0, 100, "")
	require.NoError(t, err)

	ps := l.Participants()
	ps[0].Name = "mutated"
	es := l.Expenses()
	es[0].Amount = 1

	assert.Equal(t, "Person 1", l.Participants()[0].Name)
	assert.InDelta(t, 100, l.Expenses()[0].Amount, 1e-9)
}

func TestExpensesBy(t *testing.T) {
	l := New()
	require.NoError(t, l.SetParticipantCount(2))
	a, _ := l.AddExpense(0, 1, "a")
	_, _ = l.AddExpense(1, 2, "b")
	c, _ := l.AddExpense(0, 3, "c")

	assert.Equal(t, []models.Expense{a, c}, l.ExpensesBy(0))
	assert.Empty(t, l.ExpensesBy(5))
}

func TestSummaryAndChart(t *testing.T) {
	l := calculated(t, 90, 3)
	_, err := l.AddExpense(0, 60, "")
	require.NoError(t, err)

	s := l.Summary()
	assert.InDelta(t, 90, s.TotalAmount, 1e-9)
	assert.InDelta(t, 60, s.TotalPaid, 1e-9)
	assert.InDelta(t, 30, s.PerPerson, 1e-9)

	c := l.Chart()
	assert.Equal(t, []string{"Person 1", "Person 2", "Person 3"}, c.Labels)
	assert.Equal(t, []bool{true, false, false}, c.Receiving)
}
