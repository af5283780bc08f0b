package budget

import (
	"math/rand"
	"strconv"
	"testing"

	"example.com/wedding-budget/internal/models"
)

func counterIDs() IDGenerator {
	next := 0
	return func() string {
		next++
		return "exp-" + strconv.Itoa(next)
	}
}

func weddingScenario(t *testing.T) (*Store, models.Expense) {
	t.Helper()

	store := NewStore(0, WithIDGenerator(counterIDs()))
	venue := store.Add(models.Draft{Item: "Venue", Category: string(models.CategoryVenue), EstimatedCost: 5000, ActualCost: 5500, Paid: 5500})
	store.Add(models.Draft{Item: "Attire", Category: string(models.CategoryAttire), EstimatedCost: 2000, ActualCost: 1800, Paid: 1800})
	store.Add(models.Draft{Item: "Photo", Category: string(models.CategoryPhoto), EstimatedCost: 3000, ActualCost: 3500, Paid: 1000})
	store.SetBudget(30000)

	return store, venue
}

// TestStoreScenarioSummary проверяет итоги для трех расходов и бюджета 30000.
func TestStoreScenarioSummary(t *testing.T) {
	store, _ := weddingScenario(t)

	summary := store.Summary()
	if summary.TotalEstimated != 10000 {
		t.Fatalf("expected estimated 10000, got %v", summary.TotalEstimated)
	}
	if summary.TotalActual != 10800 {
		t.Fatalf("expected actual 10800, got %v", summary.TotalActual)
	}
	if summary.TotalPaid != 8300 {
		t.Fatalf("expected paid 8300, got %v", summary.TotalPaid)
	}
	if remaining := Remaining(summary); remaining != 19200 {
		t.Fatalf("expected remaining 19200, got %v", remaining)
	}
}

// TestStoreUpdatePaid проверяет, что обновление оплаты меняет только один расход.
func TestStoreUpdatePaid(t *testing.T) {
	store, _ := weddingScenario(t)
	photo := store.Expenses()[2]
	before := store.Summary()
	others := store.Expenses()[:2]

	paid := photo.ActualCost
	updated, ok := store.Update(photo.ID, models.ExpensePatch{Paid: &paid})
	if !ok {
		t.Fatal("expected update to find expense")
	}
	if updated.ID != photo.ID {
		t.Fatalf("expected id %s to be kept, got %s", photo.ID, updated.ID)
	}

	after := store.Summary()
	if delta := after.TotalPaid - before.TotalPaid; delta != photo.ActualCost-photo.Paid {
		t.Fatalf("expected paid delta %v, got %v", photo.ActualCost-photo.Paid, delta)
	}

	for i, expense := range store.Expenses()[:2] {
		if expense != others[i] {
			t.Fatalf("expected expense %s untouched, got %+v", others[i].ID, expense)
		}
	}
}

// TestStoreUpdatePartial проверяет слияние только переданных полей.
func TestStoreUpdatePartial(t *testing.T) {
	store, venue := weddingScenario(t)

	notes := "deposit due in May"
	updated, ok := store.Update(venue.ID, models.ExpensePatch{Notes: &notes})
	if !ok {
		t.Fatal("expected update to succeed")
	}

	want := venue
	want.Notes = notes
	if updated != want {
		t.Fatalf("expected %+v, got %+v", want, updated)
	}
}

// TestStoreUnknownIDIsNoop проверяет, что неизвестный id ничего не меняет.
func TestStoreUnknownIDIsNoop(t *testing.T) {
	store, _ := weddingScenario(t)
	before := store.Expenses()
	summary := store.Summary()

	if store.Delete("missing") {
		t.Fatal("expected delete of unknown id to report false")
	}
	paid := 1.0
	if _, ok := store.Update("missing", models.ExpensePatch{Paid: &paid}); ok {
		t.Fatal("expected update of unknown id to report false")
	}
	if _, ok := store.TogglePaid("missing"); ok {
		t.Fatal("expected toggle of unknown id to report false")
	}

	after := store.Expenses()
	if len(after) != len(before) {
		t.Fatalf("expected %d expenses, got %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("expected expense %d unchanged", i)
		}
	}
	if store.Summary() != summary {
		t.Fatalf("expected summary unchanged")
	}
}

// TestStoreTogglePaid проверяет переключение полной оплаты.
func TestStoreTogglePaid(t *testing.T) {
	store, venue := weddingScenario(t)

	toggled, _ := store.TogglePaid(venue.ID)
	if toggled.Paid != 0 {
		t.Fatalf("expected fully paid venue to reset to 0, got %v", toggled.Paid)
	}

	toggled, _ = store.TogglePaid(venue.ID)
	if toggled.Paid != venue.ActualCost {
		t.Fatalf("expected paid %v, got %v", venue.ActualCost, toggled.Paid)
	}
}

// TestStoreRandomOperations проверяет размер коллекции и уникальность id.
func TestStoreRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	store := NewStore(1000)

	adds, deletes := 0, 0
	assigned := make(map[string]struct{})

	for i := 0; i < 500; i++ {
		expenses := store.Expenses()
		switch op := rng.Intn(4); {
		case op == 0 || len(expenses) == 0:
			expense := store.Add(models.Draft{Item: "item", Category: "Stationery", ActualCost: float64(rng.Intn(100))})
			if _, exists := assigned[expense.ID]; exists {
				t.Fatalf("id %s assigned twice", expense.ID)
			}
			assigned[expense.ID] = struct{}{}
			adds++
		case op == 1:
			if store.Delete(expenses[rng.Intn(len(expenses))].ID) {
				deletes++
			}
		case op == 2:
			if store.Delete("unknown-" + strconv.Itoa(i)) {
				t.Fatal("expected unknown delete to be a no-op")
			}
		default:
			target := expenses[rng.Intn(len(expenses))]
			cost := float64(rng.Intn(100))
			updated, ok := store.Update(target.ID, models.ExpensePatch{ActualCost: &cost})
			if !ok || updated.ID != target.ID {
				t.Fatalf("expected id %s to survive update", target.ID)
			}
		}
	}

	expenses := store.Expenses()
	if len(expenses) != adds-deletes {
		t.Fatalf("expected %d expenses, got %d", adds-deletes, len(expenses))
	}

	seen := make(map[string]struct{}, len(expenses))
	for _, expense := range expenses {
		if _, ok := assigned[expense.ID]; !ok {
			t.Fatalf("id %s was not assigned by add", expense.ID)
		}
		if _, dup := seen[expense.ID]; dup {
			t.Fatalf("duplicate id %s", expense.ID)
		}
		seen[expense.ID] = struct{}{}
	}
}

// TestStoreOnChange проверяет уведомление слушателей после изменений.
func TestStoreOnChange(t *testing.T) {
	store := NewStore(500)

	var got []models.BudgetSummary
	store.OnChange(func(summary models.BudgetSummary) {
		got = append(got, summary)
	})

	store.Add(models.Draft{Item: "Invitations", Category: "Stationery", ActualCost: 120})
	store.SetBudget(800)

	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if got[1].TotalBudget != 800 || got[1].TotalActual != 120 {
		t.Fatalf("unexpected summary %+v", got[1])
	}
}

// TestStoreExpensesReturnsCopy проверяет, что внешний срез не меняет состояние.
func TestStoreExpensesReturnsCopy(t *testing.T) {
	store, venue := weddingScenario(t)

	expenses := store.Expenses()
	expenses[0].Paid = -1

	current, _ := store.Get(venue.ID)
	if current.Paid != venue.Paid {
		t.Fatalf("expected stored paid %v, got %v", venue.Paid, current.Paid)
	}
}

// TestStoreSeed проверяет замену состояния демо-данными.
func TestStoreSeed(t *testing.T) {
	store := NewStore(0)
	store.Seed(DemoExpenses(), DemoBudget)

	if len(store.Expenses()) != 4 {
		t.Fatalf("expected 4 demo expenses, got %d", len(store.Expenses()))
	}
	if store.Budget() != DemoBudget {
		t.Fatalf("expected budget %d, got %v", DemoBudget, store.Budget())
	}
}
