package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/ports"
)

type stubQuestionRepo struct {
	questions map[string]*domain.Question
	seq       int
}

func newStubQuestionRepo() *stubQuestionRepo {
	return &stubQuestionRepo{questions: make(map[string]*domain.Question)}
}

func (r *stubQuestionRepo) Create(_ context.Context, q *domain.Question) (*domain.Question, error) {
	r.seq++
	copy := *q
	copy.ID = fmt.Sprintf("q_%d", r.seq)
	r.questions[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubQuestionRepo) FindByID(_ context.Context, id string) (*domain.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	copy := *q
	return &copy, nil
}

func (r *stubQuestionRepo) List(_ context.Context, filter ports.ListQuestionsFilter) ([]*domain.Question, int64, error) {
	out := make([]*domain.Question, 0, len(r.questions))
	for _, q := range r.questions {
		if filter.Status != "" && string(q.Status) != filter.Status {
			continue
		}
		if filter.AskedBy != "" && q.AskedByID != filter.AskedBy {
			continue
		}
		copy := *q
		out = append(out, &copy)
	}
	return out, int64(len(out)), nil
}

func (r *stubQuestionRepo) UpdateStatus(_ context.Context, id string, status domain.ModerationStatus) error {
	q, ok := r.questions[id]
	if !ok {
		return domain.ErrQuestionNotFound
	}
	q.Status = status
	return nil
}

func (r *stubQuestionRepo) AddVote(_ context.Context, id string, dir domain.VoteDirection) error {
	q, ok := r.questions[id]
	if !ok {
		return domain.ErrQuestionNotFound
	}
	if dir == domain.VoteUp {
		q.Upvotes++
	} else {
		q.Downvotes++
	}
	return nil
}

func (r *stubQuestionRepo) IncrementViews(_ context.Context, id string) error {
	q, ok := r.questions[id]
	if !ok {
		return domain.ErrQuestionNotFound
	}
	q.ViewCount++
	return nil
}

func (r *stubQuestionRepo) Delete(_ context.Context, id string) error {
	delete(r.questions, id)
	return nil
}

type stubAnswerRepo struct {
	answers map[string]*domain.Answer
	seq     int
}

func newStubAnswerRepo() *stubAnswerRepo {
	return &stubAnswerRepo{answers: make(map[string]*domain.Answer)}
}

func (r *stubAnswerRepo) Create(_ context.Context, a *domain.Answer) (*domain.Answer, error) {
	r.seq++
	copy := *a
	copy.ID = fmt.Sprintf("a_%d", r.seq)
	r.answers[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubAnswerRepo) FindByID(_ context.Context, id string) (*domain.Answer, error) {
	a, ok := r.answers[id]
	if !ok {
		return nil, domain.ErrAnswerNotFound
	}
	copy := *a
	return &copy, nil
}

func (r *stubAnswerRepo) ListByQuestion(_ context.Context, questionID string) ([]*domain.Answer, error) {
	out := make([]*domain.Answer, 0)
	for _, a := range r.answers {
		if a.QuestionID == questionID {
			copy := *a
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *stubAnswerRepo) AddVote(_ context.Context, id string, dir domain.VoteDirection) error {
	a, ok := r.answers[id]
	if !ok {
		return domain.ErrAnswerNotFound
	}
	if dir == domain.VoteUp {
		a.Upvotes++
	} else {
		a.Downvotes++
	}
	return nil
}

func (r *stubAnswerRepo) Delete(_ context.Context, id string) error {
	delete(r.answers, id)
	return nil
}

type stubEntityRepo struct {
	entities map[string]*domain.Entity
}

func newStubEntityRepo() *stubEntityRepo {
	return &stubEntityRepo{entities: make(map[string]*domain.Entity)}
}

func (r *stubEntityRepo) Create(_ context.Context, e *domain.Entity) (*domain.Entity, error) {
	copy := *e
	if copy.ID == "" {
		copy.ID = copy.Slug
	}
	r.entities[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubEntityRepo) FindByID(_ context.Context, id string) (*domain.Entity, error) {
	e, ok := r.entities[id]
	if !ok {
		return nil, domain.ErrEntityNotFound
	}
	copy := *e
	return &copy, nil
}

func (r *stubEntityRepo) FindBySlug(_ context.Context, slug string) (*domain.Entity, error) {
	for _, e := range r.entities {
		if e.Slug == slug {
			copy := *e
			return &copy, nil
		}
	}
	return nil, domain.ErrEntityNotFound
}

func (r *stubEntityRepo) List(_ context.Context, _ ports.ListEntitiesFilter) ([]*domain.Entity, int64, error) {
	out := make([]*domain.Entity, 0, len(r.entities))
	for _, e := range r.entities {
		copy := *e
		out = append(out, &copy)
	}
	return out, int64(len(out)), nil
}

func (r *stubEntityRepo) Update(_ context.Context, e *domain.Entity) error {
	if _, ok := r.entities[e.ID]; !ok {
		return domain.ErrEntityNotFound
	}
	copy := *e
	r.entities[e.ID] = &copy
	return nil
}

func (r *stubEntityRepo) SetFlags(_ context.Context, id string, verified, available *bool) error {
	e, ok := r.entities[id]
	if !ok {
		return domain.ErrEntityNotFound
	}
	if verified != nil {
		e.IsVerified = *verified
	}
	if available != nil {
		e.IsAvailable = *available
	}
	return nil
}

func (r *stubEntityRepo) IncrementQuestionCount(_ context.Context, id string) error {
	e, ok := r.entities[id]
	if !ok {
		return domain.ErrEntityNotFound
	}
	e.QuestionCount++
	return nil
}

func (r *stubEntityRepo) Top(_ context.Context, limit int) ([]*domain.Entity, error) {
	out := make([]*domain.Entity, 0, len(r.entities))
	for _, e := range r.entities {
		if !e.IsAvailable {
			continue
		}
		copy := *e
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionCount > out[j].QuestionCount })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// recordingEnqueuer captures fan-out inputs synchronously.
type recordingEnqueuer struct {
	inputs []ports.NotificationInput
}

func (e *recordingEnqueuer) Enqueue(input ports.NotificationInput) {
	e.inputs = append(e.inputs, input)
}

type questionFixture struct {
	svc       ports.QuestionService
	questions *stubQuestionRepo
	answers   *stubAnswerRepo
	entities  *stubEntityRepo
	users     *stubUserRepo
	enqueuer  *recordingEnqueuer
}

func newQuestionFixture(t *testing.T) *questionFixture {
	t.Helper()
	f := &questionFixture{
		questions: newStubQuestionRepo(),
		answers:   newStubAnswerRepo(),
		entities:  newStubEntityRepo(),
		users:     newStubUserRepo(),
		enqueuer:  &recordingEnqueuer{},
	}
	f.svc = NewQuestionService(f.questions, f.answers, f.entities, f.users, f.enqueuer, zerolog.Nop())

	if _, err := f.entities.Create(context.Background(), &domain.Entity{
		ID:          "ent_1",
		Name:        "Acme",
		Slug:        "acme",
		IsAvailable: true,
	}); err != nil {
		t.Fatalf("seed entity failed: %v", err)
	}
	return f
}

func (f *questionFixture) seedUser(t *testing.T, id string) {
	t.Helper()
	f.users.users[id] = &domain.User{ID: id, Username: id, Roles: domain.NewRoleSet(), IsActive: true}
}

func (f *questionFixture) seedQuestion(t *testing.T, askedBy string, status domain.ModerationStatus) *domain.Question {
	t.Helper()
	q, err := f.questions.Create(context.Background(), &domain.Question{
		Title:     "How do I return an item?",
		Content:   "Bought last week, wrong size.",
		EntityID:  "ent_1",
		AskedByID: askedBy,
		Status:    status,
	})
	if err != nil {
		t.Fatalf("seed question failed: %v", err)
	}
	return q
}

func TestQuestionService_Ask_EntersPending(t *testing.T) {
	f := newQuestionFixture(t)

	q, err := f.svc.Ask(context.Background(), ports.AskQuestionInput{
		Title:    "Shipping times?",
		Content:  "How long to zone 4?",
		EntityID: "ent_1",
		AskedBy:  "user_1",
		Tags:     []string{"shipping", ""},
	})
	if err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	if q.Status != domain.StatusPending {
		t.Fatalf("new questions must be pending, got %s", q.Status)
	}
	if len(q.Tags) != 1 || q.Tags[0].Slug != "shipping" {
		t.Fatalf("unexpected tags: %v", q.Tags)
	}
}

func TestQuestionService_Ask_BumpsEntityQuestionCount(t *testing.T) {
	f := newQuestionFixture(t)

	for i := 0; i < 3; i++ {
		if _, err := f.svc.Ask(context.Background(), ports.AskQuestionInput{
			Title:    "Question",
			Content:  "Body",
			EntityID: "ent_1",
			AskedBy:  "user_1",
		}); err != nil {
			t.Fatalf("Ask returned error: %v", err)
		}
	}

	e, err := f.entities.FindByID(context.Background(), "ent_1")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if e.QuestionCount != 3 {
		t.Fatalf("expected question count 3, got %d", e.QuestionCount)
	}
}

func TestQuestionService_Ask_UnavailableEntity(t *testing.T) {
	f := newQuestionFixture(t)
	available := false
	if err := f.entities.SetFlags(context.Background(), "ent_1", nil, &available); err != nil {
		t.Fatalf("SetFlags failed: %v", err)
	}

	_, err := f.svc.Ask(context.Background(), ports.AskQuestionInput{
		Title:    "Anyone home?",
		Content:  "Hello?",
		EntityID: "ent_1",
		AskedBy:  "user_1",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestQuestionService_ListQuestions_DefaultsToApproved(t *testing.T) {
	f := newQuestionFixture(t)
	f.seedQuestion(t, "user_1", domain.StatusPending)
	approved := f.seedQuestion(t, "user_1", domain.StatusApproved)

	res, err := f.svc.ListQuestions(context.Background(), ports.ListQuestionsFilter{})
	if err != nil {
		t.Fatalf("ListQuestions returned error: %v", err)
	}
	if len(res.Items) != 1 || res.Items[0].ID != approved.ID {
		t.Fatalf("expected only the approved question, got %d items", len(res.Items))
	}
	if res.Page != 1 || res.Limit != defaultPageLimit {
		t.Fatalf("unexpected paging defaults: page=%d limit=%d", res.Page, res.Limit)
	}
	if res.TotalPages != 1 {
		t.Fatalf("unexpected total pages: %d", res.TotalPages)
	}
}

func TestQuestionService_ListQuestions_AskerScopeIncludesAllStatuses(t *testing.T) {
	f := newQuestionFixture(t)
	f.seedQuestion(t, "user_1", domain.StatusPending)
	f.seedQuestion(t, "user_1", domain.StatusApproved)
	f.seedQuestion(t, "user_1", domain.StatusRejected)
	f.seedQuestion(t, "user_2", domain.StatusApproved)

	res, err := f.svc.ListQuestions(context.Background(), ports.ListQuestionsFilter{AskedBy: "user_1"})
	if err != nil {
		t.Fatalf("ListQuestions returned error: %v", err)
	}
	if len(res.Items) != 3 {
		t.Fatalf("author view must include every status, got %d items", len(res.Items))
	}
	for _, q := range res.Items {
		if q.AskedByID != "user_1" {
			t.Fatalf("leaked question by %s", q.AskedByID)
		}
	}

	res, err = f.svc.ListQuestions(context.Background(), ports.ListQuestionsFilter{
		AskedBy: "user_1",
		Status:  string(domain.StatusPending),
	})
	if err != nil {
		t.Fatalf("ListQuestions returned error: %v", err)
	}
	if len(res.Items) != 1 || res.Items[0].Status != domain.StatusPending {
		t.Fatalf("expected only the pending question, got %d items", len(res.Items))
	}
}

func TestQuestionService_VoteQuestion_SelfVoteRejected(t *testing.T) {
	f := newQuestionFixture(t)
	f.seedUser(t, "asker")
	q := f.seedQuestion(t, "asker", domain.StatusApproved)

	err := f.svc.VoteQuestion(context.Background(), ports.VoteInput{
		TargetID:  q.ID,
		VoterID:   "asker",
		Direction: domain.VoteUp,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for self-vote, got %v", err)
	}
	if len(f.enqueuer.inputs) != 0 {
		t.Fatalf("rejected vote must not fan out notifications")
	}
}

func TestQuestionService_VoteQuestion_UpvoteRewardsAuthor(t *testing.T) {
	f := newQuestionFixture(t)
	f.seedUser(t, "asker")
	q := f.seedQuestion(t, "asker", domain.StatusApproved)

	err := f.svc.VoteQuestion(context.Background(), ports.VoteInput{
		TargetID:  q.ID,
		VoterID:   "voter",
		Direction: domain.VoteUp,
	})
	if err != nil {
		t.Fatalf("VoteQuestion returned error: %v", err)
	}
	if got := f.users.users["asker"].ReputationPoints; got != domain.ReputationUpvote {
		t.Fatalf("author reputation = %d, want %d", got, domain.ReputationUpvote)
	}
	if len(f.enqueuer.inputs) != 1 {
		t.Fatalf("expected one notification, got %d", len(f.enqueuer.inputs))
	}
	n := f.enqueuer.inputs[0]
	if n.UserID != "asker" || n.Type != domain.NotifyUpvote {
		t.Fatalf("unexpected notification: %+v", n)
	}
}

func TestQuestionService_VoteQuestion_DownvotePenalizesQuietly(t *testing.T) {
	f := newQuestionFixture(t)
	f.seedUser(t, "asker")
	q := f.seedQuestion(t, "asker", domain.StatusApproved)

	err := f.svc.VoteQuestion(context.Background(), ports.VoteInput{
		TargetID:  q.ID,
		VoterID:   "voter",
		Direction: domain.VoteDown,
	})
	if err != nil {
		t.Fatalf("VoteQuestion returned error: %v", err)
	}
	if got := f.users.users["asker"].ReputationPoints; got != domain.ReputationDownvote {
		t.Fatalf("author reputation = %d, want %d", got, domain.ReputationDownvote)
	}
	if len(f.enqueuer.inputs) != 0 {
		t.Fatalf("downvotes must not fan out notifications")
	}
}

func TestQuestionService_Answer_OnlyApprovedQuestions(t *testing.T) {
	f := newQuestionFixture(t)
	q := f.seedQuestion(t, "asker", domain.StatusPending)

	_, err := f.svc.Answer(context.Background(), ports.AnswerInput{
		QuestionID: q.ID,
		Content:    "We ship in two days.",
		AnsweredBy: "responder",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for pending question, got %v", err)
	}
}

func TestQuestionService_Answer_NotifiesAsker(t *testing.T) {
	f := newQuestionFixture(t)
	q := f.seedQuestion(t, "asker", domain.StatusApproved)

	a, err := f.svc.Answer(context.Background(), ports.AnswerInput{
		QuestionID: q.ID,
		Content:    "We ship in two days.",
		AnsweredBy: "responder",
	})
	if err != nil {
		t.Fatalf("Answer returned error: %v", err)
	}
	if len(f.enqueuer.inputs) != 1 {
		t.Fatalf("expected one notification, got %d", len(f.enqueuer.inputs))
	}
	n := f.enqueuer.inputs[0]
	if n.UserID != "asker" || n.Type != domain.NotifyAnswer || n.RelatedID != a.ID {
		t.Fatalf("unexpected notification: %+v", n)
	}
}

func TestQuestionService_Answer_NoSelfNotification(t *testing.T) {
	f := newQuestionFixture(t)
	q := f.seedQuestion(t, "asker", domain.StatusApproved)

	if _, err := f.svc.Answer(context.Background(), ports.AnswerInput{
		QuestionID: q.ID,
		Content:    "Answering my own question.",
		AnsweredBy: "asker",
	}); err != nil {
		t.Fatalf("Answer returned error: %v", err)
	}
	if len(f.enqueuer.inputs) != 0 {
		t.Fatalf("answering your own question must not notify")
	}
}
