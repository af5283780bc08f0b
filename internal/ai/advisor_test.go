package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"example.com/wedding-budget/internal/models"
)

type fakeClient struct {
	text     string
	err      error
	calls    int
	messages []Message
}

func (f *fakeClient) Chat(_ context.Context, messages []Message) (string, []byte, error) {
	f.calls++
	f.messages = messages
	return f.text, nil, f.err
}

// blockingClient держит вызов до закрытия release и сообщает ctx.Err() вызова.
type blockingClient struct {
	text    string
	started chan struct{}
	release chan struct{}
	ctxErr  chan error
}

func newBlockingClient(text string) *blockingClient {
	return &blockingClient{
		text:    text,
		started: make(chan struct{}, 2),
		release: make(chan struct{}),
		ctxErr:  make(chan error, 2),
	}
}

func (b *blockingClient) Chat(ctx context.Context, _ []Message) (string, []byte, error) {
	b.started <- struct{}{}
	<-b.release
	b.ctxErr <- ctx.Err()
	return b.text, nil, nil
}

var sampleExpenses = []models.Expense{
	{ID: "1", Item: "Reception Venue Rental", Category: string(models.CategoryVenue), EstimatedCost: 5000, ActualCost: 5500, Paid: 5500},
	{ID: "2", Item: "Photographer", Category: string(models.CategoryPhoto), EstimatedCost: 3000, ActualCost: 3500, Paid: 1000.5},
}

// TestAdvisorWithoutCredential проверяет фиксированные ответы без ключа и отсутствие вызовов.
func TestAdvisorWithoutCredential(t *testing.T) {
	client := &fakeClient{text: "should not be used"}
	advisor := NewAdvisor(client, "  ")

	if got := advisor.AdviseOnBudget(context.Background(), "How much for flowers?", sampleExpenses, 30000); got != NoCredentialMessage {
		t.Fatalf("expected instructional message, got %q", got)
	}
	if got := advisor.Categorize(context.Background(), "Bouquet"); got != "Miscellaneous" {
		t.Fatalf("expected Miscellaneous, got %q", got)
	}
	if client.calls != 0 {
		t.Fatalf("expected no calls, got %d", client.calls)
	}

	if result := advisor.Advise(context.Background(), "q", nil, 0); !errors.Is(result.Err(), ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", result.Err())
	}
}

// TestAdvisorNilClient проверяет деградированный режим без клиента.
func TestAdvisorNilClient(t *testing.T) {
	advisor := NewAdvisor(nil, "key")
	if advisor.Configured() {
		t.Fatal("expected advisor without client to be unconfigured")
	}
}

// TestAdvisorAdvise проверяет успешный совет и содержимое системной инструкции.
func TestAdvisorAdvise(t *testing.T) {
	client := &fakeClient{text: "Spend 40% on the venue."}
	advisor := NewAdvisor(client, "key")

	result := advisor.Advise(context.Background(), "How should I split?", sampleExpenses, 30000)
	if !result.IsOk() || result.Text() != "Spend 40% on the venue." {
		t.Fatalf("unexpected result %+v", result)
	}

	if len(client.messages) != 2 || client.messages[0].Role != roleSystem || client.messages[1].Content != "How should I split?" {
		t.Fatalf("unexpected messages %+v", client.messages)
	}

	instruction := client.messages[0].Content
	for _, want := range []string{
		"- Total Budget: $30000",
		"- Reception Venue Rental (Venue & Catering): Est $5000, Paid $5500",
		"- Photographer (Photography & Video): Est $3000, Paid $1000.5",
		"40% Venue, 10% Photo",
	} {
		if !strings.Contains(instruction, want) {
			t.Fatalf("expected instruction to contain %q, got:\n%s", want, instruction)
		}
	}
}

// TestAdvisorFallbacks проверяет сведение ошибок к фиксированным текстам.
func TestAdvisorFallbacks(t *testing.T) {
	cases := []struct {
		name   string
		client *fakeClient
		want   string
	}{
		{name: "transport error", client: &fakeClient{err: errors.New("dial tcp: timeout")}, want: UnavailableMessage},
		{name: "empty text", client: &fakeClient{text: "  "}, want: EmptyAdviceMessage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			advisor := NewAdvisor(tc.client, "key")
			if got := advisor.AdviseOnBudget(context.Background(), "hi", nil, 100); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

// TestAdvisorAdviseErrorIsObservable проверяет, что причина ошибки доступна до сведения.
func TestAdvisorAdviseErrorIsObservable(t *testing.T) {
	cause := errors.New("gemini api error: quota exceeded")
	advisor := NewAdvisor(&fakeClient{err: cause}, "key")

	result := advisor.Advise(context.Background(), "hi", nil, 100)
	if result.IsOk() || !errors.Is(result.Err(), cause) {
		t.Fatalf("expected wrapped cause, got %v", result.Err())
	}
	if result.TextOr("fallback") != "fallback" {
		t.Fatal("expected fallback text")
	}
}

// TestAdvisorCategorize проверяет обрезку метки и fallback.
func TestAdvisorCategorize(t *testing.T) {
	client := &fakeClient{text: "  Flowers & Decor\n"}
	advisor := NewAdvisor(client, "key")

	if got := advisor.Categorize(context.Background(), "Peony centerpieces"); got != "Flowers & Decor" {
		t.Fatalf("expected Flowers & Decor, got %q", got)
	}
	if !strings.Contains(client.messages[0].Content, `"Peony centerpieces"`) {
		t.Fatalf("expected prompt to quote item, got %q", client.messages[0].Content)
	}
	if !strings.Contains(client.messages[0].Content, "'Gifts & Favors', 'Miscellaneous'") {
		t.Fatalf("expected prompt to list categories, got %q", client.messages[0].Content)
	}

	failing := NewAdvisor(&fakeClient{err: errors.New("boom")}, "key")
	if got := failing.Categorize(context.Background(), "DJ"); got != "Miscellaneous" {
		t.Fatalf("expected Miscellaneous on failure, got %q", got)
	}

	empty := NewAdvisor(&fakeClient{text: ""}, "key")
	if got := empty.Categorize(context.Background(), "DJ"); got != "Miscellaneous" {
		t.Fatalf("expected Miscellaneous on empty text, got %q", got)
	}
}

// TestAdvisorCategorizeUnknownLabel проверяет, что метка не фильтруется клиентом.
func TestAdvisorCategorizeUnknownLabel(t *testing.T) {
	advisor := NewAdvisor(&fakeClient{text: "Transportation"}, "key")

	label := advisor.Categorize(context.Background(), "Limo")
	if label != "Transportation" {
		t.Fatalf("expected raw label, got %q", label)
	}
	if _, ok := models.ParseCategory(label); ok {
		t.Fatal("expected unknown label to fail validation")
	}
}

// TestClassifyCallerCancellation проверяет, что отмена одного клиента
// не обрывает общий вызов модели для остальных.
func TestClassifyCallerCancellation(t *testing.T) {
	client := newBlockingClient("Flowers")
	advisor := NewAdvisor(client, "key")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Result, 1)
	go func() {
		done <- advisor.Classify(ctx, "Bouquet")
	}()

	select {
	case <-client.started:
	case <-time.After(2 * time.Second):
		t.Fatal("model call did not start")
	}

	cancel()
	select {
	case result := <-done:
		if !errors.Is(result.Err(), context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", result.Err())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled caller kept waiting")
	}

	close(client.release)
	select {
	case err := <-client.ctxErr:
		if err != nil {
			t.Fatalf("shared call saw cancelled context: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("model call did not finish")
	}

	result := advisor.Classify(context.Background(), "Bouquet")
	if !result.IsOk() || result.Text() != "Flowers" {
		t.Fatalf("expected Flowers, got %q (%v)", result.Text(), result.Err())
	}
}
